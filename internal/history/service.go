// Package history は投稿履歴のドメインロジックを提供する。
// 履歴は追記専用で、エントリの更新・削除は行われない。
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/repository"
)

// Service は投稿履歴のサービス層。
type Service struct {
	historyRepo repository.HistoryRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(historyRepo repository.HistoryRepository) *Service {
	return &Service{historyRepo: historyRepo}
}

// Append は投稿履歴エントリを追記する。
// IDと記録時刻が未設定の場合は補完する。
func (s *Service) Append(ctx context.Context, entry *model.PostHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.PostedAt.IsZero() {
		entry.PostedAt = time.Now()
	}

	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("投稿履歴の追記に失敗しました: %w", err)
	}
	return nil
}

// Query はユーザーの投稿履歴をフィルタ条件付きで新しい順に返す。
// 無効なプラットフォーム指定の場合はINVALID_FILTERエラーを返す。
func (s *Service) Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error) {
	if filter.Platform != "" && !filter.Platform.Valid() {
		return nil, model.NewInvalidFilterError(fmt.Sprintf("不明なプラットフォーム: %s", filter.Platform))
	}

	entries, err := s.historyRepo.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("投稿履歴の取得に失敗しました: %w", err)
	}
	return entries, nil
}
