// Package model はドメインモデルを定義する。
package model

import "time"

// Platform は投稿先のソーシャルプラットフォームを表す。
type Platform string

const (
	// PlatformInstagram はInstagram。
	PlatformInstagram Platform = "instagram"
	// PlatformLinkedIn はLinkedIn。
	PlatformLinkedIn Platform = "linkedin"
	// PlatformTwitter はX (Twitter)。
	PlatformTwitter Platform = "twitter"
)

// AllPlatforms はサポートする全プラットフォームの一覧。
// レポートやバンドルの走査順はこのスライスの順序に従う。
var AllPlatforms = []Platform{PlatformInstagram, PlatformLinkedIn, PlatformTwitter}

// Valid はサポート対象のプラットフォームかどうかを返す。
func (p Platform) Valid() bool {
	for _, v := range AllPlatforms {
		if p == v {
			return true
		}
	}
	return false
}

// SourceKind はコンテンツ生成の入力ソース種別を表す。
type SourceKind string

const (
	// SourceKindYouTube はYouTube動画をソースとする生成。
	SourceKindYouTube SourceKind = "youtube"
	// SourceKindQuickThought は短文の思いつきをソースとする生成。
	SourceKindQuickThought SourceKind = "quick_thought"
)

// Valid はサポート対象のソース種別かどうかを返す。
func (k SourceKind) Valid() bool {
	return k == SourceKindYouTube || k == SourceKindQuickThought
}

// PostBody はプラットフォーム固有の投稿本文を表す。
// Instagram の候補は ClipRef と Caption を持ち、
// LinkedIn / Twitter の候補は Text のみを持つ。
type PostBody struct {
	ClipRef string // Instagram のみ: 切り出しクリップの参照
	Caption string // Instagram のみ
	Text    string // LinkedIn / Twitter のみ
}

// Snippet は本文の表示用テキストを返す。
// Caption または Text のうち設定されている方を返す。
func (b PostBody) Snippet() string {
	if b.Text != "" {
		return b.Text
	}
	return b.Caption
}

// CandidateStatus は投稿候補の状態を表す。
type CandidateStatus string

const (
	// CandidateStatusPending は未投稿の投稿候補。
	// Draft保存時点ですべての候補はこの状態になる。
	CandidateStatusPending CandidateStatus = "pending"
)

// PostCandidate はレビュー待ちの投稿候補1件を表す。
// ContentGeneratorのみが生成し、保存前のプレビュー段階でのみ編集可能。
type PostCandidate struct {
	Platform Platform
	Body     PostBody
	Status   CandidateStatus
}

// CandidateBundle はプラットフォームごとの投稿候補リスト。
// 全プラットフォームのキーを常に持ち、候補がない場合は空スライスとする
// （キー省略ではなく空リスト）。
type CandidateBundle map[Platform][]PostCandidate

// NewCandidateBundle は全プラットフォームのキーを空スライスで初期化した
// CandidateBundleを生成する。
func NewCandidateBundle() CandidateBundle {
	b := make(CandidateBundle, len(AllPlatforms))
	for _, p := range AllPlatforms {
		b[p] = []PostCandidate{}
	}
	return b
}

// TotalCount はバンドル内の候補の合計数を返す。
func (b CandidateBundle) TotalCount() int {
	n := 0
	for _, candidates := range b {
		n += len(candidates)
	}
	return n
}

// GenerationRequest はコンテンツ生成1回分の入力を表す。
// 永続化されない一時オブジェクト。
type GenerationRequest struct {
	SourceKind SourceKind
	SourceText string
	Profile    *BrandProfile
}

// SourceRef はDraftの生成元を表す。
// URLとThoughtは排他で、どちらか一方のみ設定される。
type SourceRef struct {
	URL     string // YouTube動画のURL
	Thought string // 短文の思いつき
}

// Draft は生成済み投稿候補のバンドルを永続化したものを表す。
// 保存後は変更されない。publishはDraftのスナップショットを消費する。
type Draft struct {
	ID         string
	UserID     string
	Source     SourceRef
	Candidates CandidateBundle
	CreatedAt  time.Time
}
