// Package security はアプリケーションのセキュリティ機能を提供する。
//
// SourceSanitizerService は外部から取得した動画メタデータ（タイトル・説明文）を
// サニタイズし、HTMLタグやスクリプトを除去したプレーンテキストに変換する。
// サニタイズ後のテキストは生成プロンプトの素材として使用される。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SourceSanitizerService はソーステキストのサニタイズ機能のインターフェースを定義する。
// 動画メタデータの取得直後、生成リクエストに渡す前に使用される。
type SourceSanitizerService interface {
	// SanitizeText は入力からすべてのHTMLタグを除去し、
	// エンティティをデコードしたプレーンテキストを返す。
	// 連続する空白は1つにまとめ、前後の空白は除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeText(raw string) string
}

// sourceSanitizer はSourceSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type sourceSanitizer struct {
	policy *bluemonday.Policy
}

// NewSourceSanitizer はSourceSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyによりすべてのタグと属性が除去され、テキストのみが残る。
func NewSourceSanitizer() *sourceSanitizer {
	return &sourceSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
func (s *sourceSanitizer) SanitizeText(raw string) string {
	if raw == "" {
		return ""
	}

	stripped := s.policy.Sanitize(raw)

	// bluemondayは出力をHTMLエスケープするため、テキストとして扱うにはデコードが必要
	decoded := html.UnescapeString(stripped)

	return strings.Join(strings.Fields(decoded), " ")
}

// compile-time interface check
var _ SourceSanitizerService = (*sourceSanitizer)(nil)
