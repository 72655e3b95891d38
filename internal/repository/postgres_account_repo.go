package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/socialhub/internal/model"
)

// PostgresAccountRepo はPostgreSQLを使用した接続済みアカウントリポジトリ。
type PostgresAccountRepo struct {
	db *sql.DB
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db *sql.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// FindByUserAndPlatform はユーザーIDとプラットフォームでアカウントを検索する。
// 見つからない場合はnilを返す。
func (r *PostgresAccountRepo) FindByUserAndPlatform(ctx context.Context, userID string, platform model.Platform) (*model.ConnectedAccount, error) {
	account := &model.ConnectedAccount{}
	var credential sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, platform, credential, state, created_at, updated_at
		 FROM connected_accounts WHERE user_id = $1 AND platform = $2`,
		userID, string(platform),
	).Scan(&account.ID, &account.UserID, &account.Platform, &credential,
		&account.State, &account.CreatedAt, &account.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("アカウントの取得に失敗しました: %w", err)
	}

	account.Credential = nullStringValue(credential)

	return account, nil
}

// Upsert はアカウントを冪等にUPSERTする。
// (user_id, platform) の一意制約に対するON CONFLICTで、
// 既存レコードの資格情報と状態を上書きする。
func (r *PostgresAccountRepo) Upsert(ctx context.Context, account *model.ConnectedAccount) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO connected_accounts (id, user_id, platform, credential, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, platform) DO UPDATE SET
			credential = EXCLUDED.credential,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`,
		account.ID, account.UserID, string(account.Platform),
		nullString(account.Credential), string(account.State),
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("アカウントの保存に失敗しました: %w", err)
	}
	return nil
}

// ListByUserID はユーザーの全アカウントを返す。
func (r *PostgresAccountRepo) ListByUserID(ctx context.Context, userID string) ([]*model.ConnectedAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, platform, credential, state, created_at, updated_at
		 FROM connected_accounts WHERE user_id = $1 ORDER BY platform`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("アカウント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var accounts []*model.ConnectedAccount
	for rows.Next() {
		account := &model.ConnectedAccount{}
		var credential sql.NullString

		if err := rows.Scan(&account.ID, &account.UserID, &account.Platform, &credential,
			&account.State, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, fmt.Errorf("アカウント行の読み取りに失敗しました: %w", err)
		}

		account.Credential = nullStringValue(credential)
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("アカウント一覧の走査に失敗しました: %w", err)
	}

	return accounts, nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
