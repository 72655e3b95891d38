// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, content, publish, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeGenerationFailed  = "GENERATION_FAILED"
	ErrCodePersistenceFailed = "PERSISTENCE_FAILED"
	ErrCodeDraftNotFound     = "DRAFT_NOT_FOUND"
	ErrCodeProfileNotFound   = "PROFILE_NOT_FOUND"
	ErrCodeInvalidPlatform   = "INVALID_PLATFORM"
	ErrCodeInvalidSource     = "INVALID_SOURCE"
	ErrCodeInvalidFilter     = "INVALID_FILTER"
	ErrCodeInvalidURL        = "INVALID_URL"
	ErrCodeSSRFBlocked       = "SSRF_BLOCKED"
	ErrCodeSourceFetchFailed = "SOURCE_FETCH_FAILED"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
)

// NewGenerationFailedError は生成コラボレータの到達不能または
// 不正な出力による生成失敗エラーを生成する。
func NewGenerationFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeGenerationFailed,
		Message:  fmt.Sprintf("コンテンツの生成に失敗しました: %s", reason),
		Category: "content",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewPersistenceFailedError はストレージ利用不能による永続化失敗エラーを生成する。
// 失敗した書き込みは行われなかったものとして扱う。
func NewPersistenceFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodePersistenceFailed,
		Message:  fmt.Sprintf("データの保存に失敗しました: %s", reason),
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewDraftNotFoundError はDraft未検出エラーを生成する。
func NewDraftNotFoundError(draftID string) *APIError {
	return &APIError{
		Code:     ErrCodeDraftNotFound,
		Message:  fmt.Sprintf("指定されたドラフトが見つかりません: %s", draftID),
		Category: "content",
		Action:   "ドラフトIDを確認してください。",
	}
}

// NewInvalidPlatformError は無効なプラットフォーム指定エラーを生成する。
func NewInvalidPlatformError(platform string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPlatform,
		Message:  fmt.Sprintf("無効なプラットフォームです: %s", platform),
		Category: "validation",
		Action:   "プラットフォームには instagram、linkedin、twitter のいずれかを指定してください。",
	}
}

// NewInvalidSourceError は生成リクエストのソース入力が不正な場合のエラーを生成する。
func NewInvalidSourceError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidSource,
		Message:  fmt.Sprintf("ソース入力が不正です: %s", reason),
		Category: "validation",
		Action:   "YouTube動画のURLまたは短文のテキストを入力してください。",
	}
}

// NewInvalidFilterError は無効な履歴フィルタエラーを生成する。
func NewInvalidFilterError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilter,
		Message:  fmt.Sprintf("無効なフィルタです: %s", reason),
		Category: "validation",
		Action:   "プラットフォーム名と日付（YYYY-MM-DD）の形式を確認してください。",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("無効なURLです: %s", reason),
		Category: "validation",
		Action:   "正しいURL形式（http:// または https:// で始まるURL）を入力してください。",
	}
}

// NewSSRFBlockedError はSSRFブロックエラーを生成する。
func NewSSRFBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeSSRFBlocked,
		Message:  "セキュリティポリシーにより、指定されたURLへのアクセスがブロックされました。",
		Category: "validation",
		Action:   "公開されているYouTube動画のURLを入力してください。ローカルネットワークやプライベートIPへのアクセスは許可されていません。",
	}
}

// NewSourceFetchFailedError はソースメタデータの取得失敗エラーを生成する。
func NewSourceFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeSourceFetchFailed,
		Message:  fmt.Sprintf("動画情報の取得に失敗しました: %s", reason),
		Category: "content",
		Action:   "URLが正しいか確認し、しばらく待ってから再度お試しください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
