// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/socialhub/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// ProfileRepository はブランドプロファイルの永続化インターフェース。
// 1ユーザーにつき1プロファイル（user_idが自然キー）。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロファイルを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.BrandProfile, error)

	// Create はプロファイルを作成する。
	Create(ctx context.Context, profile *model.BrandProfile) error

	// Update はプロファイルの全フィールドを更新する。
	Update(ctx context.Context, profile *model.BrandProfile) error
}

// DraftRepository はDraftの永続化インターフェース。
// 追記専用で、更新APIは持たない。候補の編集は保存前のプレビュー段階でのみ行われる。
type DraftRepository interface {
	// Create はDraftを作成する。失敗した場合、新しいDraftは一切可視にならない。
	Create(ctx context.Context, draft *model.Draft) error

	// FindByID は指定IDのDraftを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Draft, error)

	// ListByUserID はユーザーのDraft一覧を作成日時の降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Draft, error)

	// CountByUserID はユーザーのDraft数を返す。
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// AccountRepository は接続済みアカウントの永続化インターフェース。
// (user_id, platform) が自然キー。
type AccountRepository interface {
	// FindByUserAndPlatform はユーザーIDとプラットフォームでアカウントを検索する。
	// 見つからない場合はnilを返す。
	FindByUserAndPlatform(ctx context.Context, userID string, platform model.Platform) (*model.ConnectedAccount, error)

	// Upsert はアカウントを冪等にUPSERTする。
	// 既存レコードがある場合は資格情報と状態を上書きする。
	Upsert(ctx context.Context, account *model.ConnectedAccount) error

	// ListByUserID はユーザーの全アカウントを返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.ConnectedAccount, error)
}

// HistoryRepository は投稿履歴の永続化インターフェース。
// Appendが唯一の書き込み操作で、エントリの更新・削除は行われない。
// Appendはエントリ単位でアトミックであり、並行呼び出しで書き込みが失われないこと。
type HistoryRepository interface {
	// Append は投稿履歴エントリを追記する。
	Append(ctx context.Context, entry *model.PostHistoryEntry) error

	// ListByUserID はユーザーの投稿履歴をフィルタ条件付きでposted_at降順で返す。
	ListByUserID(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error)

	// CountByUserAndStatus はユーザーの指定結果種別のエントリ数を返す。
	CountByUserAndStatus(ctx context.Context, userID string, status model.OutcomeStatus) (int, error)

	// FindLatestByUserID はユーザーの最新の履歴エントリを返す。存在しない場合はnilを返す。
	FindLatestByUserID(ctx context.Context, userID string) (*model.PostHistoryEntry, error)
}
