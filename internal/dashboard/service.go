// Package dashboard はダッシュボード表示用の集計を提供する。
package dashboard

import (
	"context"
	"fmt"

	"github.com/hitoshi/socialhub/internal/model"
)

// DraftCounter はドラフト数の取得に必要なインターフェース。
// repository.DraftRepositoryの部分集合として定義する。
type DraftCounter interface {
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// HistoryStats は投稿履歴の集計に必要なインターフェース。
type HistoryStats interface {
	CountByUserAndStatus(ctx context.Context, userID string, status model.OutcomeStatus) (int, error)
	FindLatestByUserID(ctx context.Context, userID string) (*model.PostHistoryEntry, error)
}

// AccountLister は接続アカウント一覧の取得に必要なインターフェース。
type AccountLister interface {
	ListByUserID(ctx context.Context, userID string) ([]*model.ConnectedAccount, error)
}

// Summary はダッシュボードに表示する集計値。
type Summary struct {
	DraftCount         int
	PublishedCount     int
	FailedCount        int
	ConnectedPlatforms []model.Platform
	LatestPost         *model.PostHistoryEntry // 投稿履歴がない場合はnil
}

// Service はダッシュボード集計サービス。
type Service struct {
	draftRepo   DraftCounter
	historyRepo HistoryStats
	accountRepo AccountLister
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(draftRepo DraftCounter, historyRepo HistoryStats, accountRepo AccountLister) *Service {
	return &Service{
		draftRepo:   draftRepo,
		historyRepo: historyRepo,
		accountRepo: accountRepo,
	}
}

// Summarize はユーザーのダッシュボード集計を取得する。
func (s *Service) Summarize(ctx context.Context, userID string) (*Summary, error) {
	draftCount, err := s.draftRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ドラフト数の取得に失敗しました: %w", err)
	}

	publishedCount, err := s.historyRepo.CountByUserAndStatus(ctx, userID, model.OutcomeSuccess)
	if err != nil {
		return nil, fmt.Errorf("投稿成功数の取得に失敗しました: %w", err)
	}

	failedCount, err := s.historyRepo.CountByUserAndStatus(ctx, userID, model.OutcomeFailed)
	if err != nil {
		return nil, fmt.Errorf("投稿失敗数の取得に失敗しました: %w", err)
	}

	latest, err := s.historyRepo.FindLatestByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("最新投稿の取得に失敗しました: %w", err)
	}

	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("接続アカウントの取得に失敗しました: %w", err)
	}

	var connected []model.Platform
	for _, account := range accounts {
		if account.State == model.CredentialStateConnected {
			connected = append(connected, account.Platform)
		}
	}

	return &Summary{
		DraftCount:         draftCount,
		PublishedCount:     publishedCount,
		FailedCount:        failedCount,
		ConnectedPlatforms: connected,
		LatestPost:         latest,
	}, nil
}
