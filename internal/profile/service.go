// Package profile はブランドプロファイル管理のドメインロジックを提供する。
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/repository"
)

// UpdateInput はプロファイル更新の入力。
type UpdateInput struct {
	Name               string
	Agency             string
	Entrepreneur       model.BrandFacet
	AIExpert           model.BrandFacet
	Differentiators    string
	Philosophy         string
	OverallTone        string
	MandatoryInclusion string
}

// Service はブランドプロファイル管理のサービス層。
// プロファイルの遅延作成、取得、更新のビジネスロジックを提供する。
type Service struct {
	profileRepo repository.ProfileRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(profileRepo repository.ProfileRepository) *Service {
	return &Service{profileRepo: profileRepo}
}

// GetOrCreate はユーザーのプロファイルを返す。
// 未作成の場合はデフォルト値で作成してから返す。
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*model.BrandProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プロファイルの取得に失敗しました: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = model.DefaultBrandProfile(userID)
	profile.ID = uuid.NewString()

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("デフォルトプロファイルの作成に失敗しました: %w", err)
	}

	return profile, nil
}

// Update はプロファイルの全フィールドを更新して返す。
// プロファイル未作成のユーザーにはデフォルト値で作成してから更新を適用する。
func (s *Service) Update(ctx context.Context, userID string, input UpdateInput) (*model.BrandProfile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = input.Name
	profile.Agency = input.Agency
	profile.Entrepreneur = input.Entrepreneur
	profile.AIExpert = input.AIExpert
	profile.Differentiators = input.Differentiators
	profile.Philosophy = input.Philosophy
	profile.OverallTone = input.OverallTone
	profile.MandatoryInclusion = input.MandatoryInclusion
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("プロファイルの更新に失敗しました: %w", err)
	}

	return profile, nil
}
