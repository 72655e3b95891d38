// Package draft はDraft管理のドメインロジックを提供する。
// Draftは生成済み投稿候補のバンドルを永続化したもので、保存後は変更されない。
package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/repository"
)

// Service はDraft管理のサービス層。
type Service struct {
	draftRepo repository.DraftRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(draftRepo repository.DraftRepository) *Service {
	return &Service{draftRepo: draftRepo}
}

// Save は候補バンドルをDraftとして保存して返す。
// 保存に失敗した場合はPERSISTENCE_FAILEDエラーを返し、Draftは一切可視にならない。
// 候補の編集結果は渡されたバンドルに反映済みであることを前提とする。
func (s *Service) Save(ctx context.Context, userID string, source model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error) {
	if err := validateSource(source); err != nil {
		return nil, err
	}

	// 保存時の不変条件: 全プラットフォームのキーを持ち、全候補はpending状態
	bundle := model.NewCandidateBundle()
	for _, platform := range model.AllPlatforms {
		for _, c := range candidates[platform] {
			c.Platform = platform
			c.Status = model.CandidateStatusPending
			bundle[platform] = append(bundle[platform], c)
		}
	}

	draft := &model.Draft{
		ID:         uuid.NewString(),
		UserID:     userID,
		Source:     source,
		Candidates: bundle,
		CreatedAt:  time.Now(),
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, model.NewPersistenceFailedError(err.Error())
	}

	return draft, nil
}

// Get は指定IDのDraftを取得する。
// 見つからない場合、または他ユーザーのDraftの場合はDRAFT_NOT_FOUNDエラーを返す。
func (s *Service) Get(ctx context.Context, userID, draftID string) (*model.Draft, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("ドラフトの取得に失敗しました: %w", err)
	}
	if draft == nil || draft.UserID != userID {
		return nil, model.NewDraftNotFoundError(draftID)
	}
	return draft, nil
}

// List はユーザーのDraft一覧を作成日時の降順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Draft, error) {
	drafts, err := s.draftRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ドラフト一覧の取得に失敗しました: %w", err)
	}
	return drafts, nil
}

// validateSource はDraftの生成元の排他性を検証する。
func validateSource(source model.SourceRef) error {
	hasURL := strings.TrimSpace(source.URL) != ""
	hasThought := strings.TrimSpace(source.Thought) != ""

	if hasURL == hasThought {
		return model.NewInvalidSourceError("動画URLまたは短文のどちらか一方のみを指定してください")
	}
	return nil
}
