// Package account はプラットフォームアカウント接続管理のドメインロジックを提供する。
// 資格情報の発行は外部コラボレータに委ね、本パッケージは接続状態の記録のみを担う。
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/repository"
)

// Service はアカウント接続管理のサービス層。
type Service struct {
	accountRepo repository.AccountRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(accountRepo repository.AccountRepository) *Service {
	return &Service{accountRepo: accountRepo}
}

// Connect はプラットフォームとの接続を記録する。
// 接続済みの場合は資格情報を上書きするのみで、重複レコードは作成しない（冪等）。
func (s *Service) Connect(ctx context.Context, userID string, platform model.Platform, credential string) (*model.ConnectedAccount, error) {
	if !platform.Valid() {
		return nil, model.NewInvalidPlatformError(string(platform))
	}

	now := time.Now()
	account, err := s.accountRepo.FindByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return nil, fmt.Errorf("アカウントの取得に失敗しました: %w", err)
	}

	if account == nil {
		account = &model.ConnectedAccount{
			ID:        uuid.NewString(),
			UserID:    userID,
			Platform:  platform,
			CreatedAt: now,
		}
	}

	account.Credential = credential
	account.State = model.CredentialStateConnected
	account.UpdatedAt = now

	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, model.NewPersistenceFailedError(err.Error())
	}

	return account, nil
}

// Disconnect はプラットフォームとの接続を解除する。
// 未接続の場合は何もせず成功を返す（冪等）。レコード自体は削除しない。
func (s *Service) Disconnect(ctx context.Context, userID string, platform model.Platform) error {
	if !platform.Valid() {
		return model.NewInvalidPlatformError(string(platform))
	}

	account, err := s.accountRepo.FindByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return fmt.Errorf("アカウントの取得に失敗しました: %w", err)
	}
	if account == nil || account.State == model.CredentialStateDisconnected {
		return nil
	}

	account.Credential = ""
	account.State = model.CredentialStateDisconnected
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return model.NewPersistenceFailedError(err.Error())
	}

	return nil
}

// List はユーザーの全アカウントを返す。
// 一度も接続されていないプラットフォームのレコードは含まれない。
func (s *Service) List(ctx context.Context, userID string) ([]*model.ConnectedAccount, error) {
	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("アカウント一覧の取得に失敗しました: %w", err)
	}
	return accounts, nil
}

// ConnectedCredentials はユーザーの接続済みプラットフォームと資格情報のマップを返す。
// publish時の接続ゲート判定に使用する。
func (s *Service) ConnectedCredentials(ctx context.Context, userID string) (map[model.Platform]string, error) {
	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("アカウント一覧の取得に失敗しました: %w", err)
	}

	credentials := make(map[model.Platform]string)
	for _, account := range accounts {
		if account.State == model.CredentialStateConnected {
			credentials[account.Platform] = account.Credential
		}
	}
	return credentials, nil
}
