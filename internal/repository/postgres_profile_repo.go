package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/socialhub/internal/model"
)

// PostgresProfileRepo はPostgreSQLを使用したブランドプロファイルリポジトリ。
type PostgresProfileRepo struct {
	db *sql.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByUserID は指定ユーザーのプロファイルを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.BrandProfile, error) {
	profile := &model.BrandProfile{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, agency,
		        entrepreneur_focus, entrepreneur_tone,
		        ai_expert_focus, ai_expert_tone,
		        differentiators, philosophy, overall_tone, mandatory_inclusion,
		        created_at, updated_at
		 FROM brand_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.Agency,
		&profile.Entrepreneur.Focus, &profile.Entrepreneur.Tone,
		&profile.AIExpert.Focus, &profile.AIExpert.Tone,
		&profile.Differentiators, &profile.Philosophy,
		&profile.OverallTone, &profile.MandatoryInclusion,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プロファイルの取得に失敗しました: %w", err)
	}

	return profile, nil
}

// Create はプロファイルを作成する。
func (r *PostgresProfileRepo) Create(ctx context.Context, profile *model.BrandProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO brand_profiles (
			id, user_id, name, agency,
			entrepreneur_focus, entrepreneur_tone,
			ai_expert_focus, ai_expert_tone,
			differentiators, philosophy, overall_tone, mandatory_inclusion,
			created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		profile.ID, profile.UserID, profile.Name, profile.Agency,
		profile.Entrepreneur.Focus, profile.Entrepreneur.Tone,
		profile.AIExpert.Focus, profile.AIExpert.Tone,
		profile.Differentiators, profile.Philosophy,
		profile.OverallTone, profile.MandatoryInclusion,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("プロファイルの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はプロファイルの全フィールドを更新する。
func (r *PostgresProfileRepo) Update(ctx context.Context, profile *model.BrandProfile) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE brand_profiles SET
			name = $1, agency = $2,
			entrepreneur_focus = $3, entrepreneur_tone = $4,
			ai_expert_focus = $5, ai_expert_tone = $6,
			differentiators = $7, philosophy = $8,
			overall_tone = $9, mandatory_inclusion = $10,
			updated_at = $11
		 WHERE id = $12`,
		profile.Name, profile.Agency,
		profile.Entrepreneur.Focus, profile.Entrepreneur.Tone,
		profile.AIExpert.Focus, profile.AIExpert.Tone,
		profile.Differentiators, profile.Philosophy,
		profile.OverallTone, profile.MandatoryInclusion,
		profile.UpdatedAt, profile.ID,
	)
	if err != nil {
		return fmt.Errorf("プロファイルの更新に失敗しました: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新件数の取得に失敗しました: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("更新対象のプロファイルが見つかりません: %s", profile.ID)
	}
	return nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
