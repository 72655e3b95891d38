package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/socialhub/internal/model"
)

// PostgresDraftRepo はPostgreSQLを使用したDraftリポジトリ。
// 候補バンドルはJSONBカラムに格納する。
type PostgresDraftRepo struct {
	db *sql.DB
}

// NewPostgresDraftRepo はPostgresDraftRepoを生成する。
func NewPostgresDraftRepo(db *sql.DB) *PostgresDraftRepo {
	return &PostgresDraftRepo{db: db}
}

// storedCandidate はJSONBカラムに格納する候補の形式。
type storedCandidate struct {
	ClipRef string `json:"clip_ref,omitempty"`
	Caption string `json:"caption,omitempty"`
	Text    string `json:"text,omitempty"`
	Status  string `json:"status"`
}

// marshalBundle はCandidateBundleをJSONBカラム格納用にシリアライズする。
func marshalBundle(bundle model.CandidateBundle) ([]byte, error) {
	stored := make(map[string][]storedCandidate, len(bundle))
	for platform, candidates := range bundle {
		list := make([]storedCandidate, 0, len(candidates))
		for _, c := range candidates {
			list = append(list, storedCandidate{
				ClipRef: c.Body.ClipRef,
				Caption: c.Body.Caption,
				Text:    c.Body.Text,
				Status:  string(c.Status),
			})
		}
		stored[string(platform)] = list
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("候補バンドルのシリアライズに失敗しました: %w", err)
	}
	return data, nil
}

// unmarshalBundle はJSONBカラムの内容をCandidateBundleに復元する。
// 全プラットフォームのキーを常に持つ不変条件を復元時にも保証する。
func unmarshalBundle(data []byte) (model.CandidateBundle, error) {
	var stored map[string][]storedCandidate
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("候補バンドルの復元に失敗しました: %w", err)
	}
	bundle := model.NewCandidateBundle()
	for platformName, list := range stored {
		platform := model.Platform(platformName)
		if !platform.Valid() {
			continue
		}
		candidates := make([]model.PostCandidate, 0, len(list))
		for _, s := range list {
			candidates = append(candidates, model.PostCandidate{
				Platform: platform,
				Body: model.PostBody{
					ClipRef: s.ClipRef,
					Caption: s.Caption,
					Text:    s.Text,
				},
				Status: model.CandidateStatus(s.Status),
			})
		}
		bundle[platform] = candidates
	}
	return bundle, nil
}

// Create はDraftを作成する。失敗した場合、新しいDraftは一切可視にならない。
func (r *PostgresDraftRepo) Create(ctx context.Context, draft *model.Draft) error {
	candidates, err := marshalBundle(draft.Candidates)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO drafts (id, user_id, source_url, source_thought, candidates, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		draft.ID, draft.UserID,
		nullString(draft.Source.URL), nullString(draft.Source.Thought),
		candidates, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ドラフトの作成に失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDのDraftを取得する。見つからない場合はnilを返す。
func (r *PostgresDraftRepo) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	draft := &model.Draft{}
	var sourceURL, sourceThought sql.NullString
	var candidates []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, source_url, source_thought, candidates, created_at
		 FROM drafts WHERE id = $1`,
		id,
	).Scan(&draft.ID, &draft.UserID, &sourceURL, &sourceThought, &candidates, &draft.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ドラフトの取得に失敗しました: %w", err)
	}

	draft.Source.URL = nullStringValue(sourceURL)
	draft.Source.Thought = nullStringValue(sourceThought)
	draft.Candidates, err = unmarshalBundle(candidates)
	if err != nil {
		return nil, err
	}

	return draft, nil
}

// ListByUserID はユーザーのDraft一覧を作成日時の降順で返す。
func (r *PostgresDraftRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, source_url, source_thought, candidates, created_at
		 FROM drafts WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ドラフト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var drafts []*model.Draft
	for rows.Next() {
		draft := &model.Draft{}
		var sourceURL, sourceThought sql.NullString
		var candidates []byte

		if err := rows.Scan(&draft.ID, &draft.UserID, &sourceURL, &sourceThought, &candidates, &draft.CreatedAt); err != nil {
			return nil, fmt.Errorf("ドラフト行の読み取りに失敗しました: %w", err)
		}

		draft.Source.URL = nullStringValue(sourceURL)
		draft.Source.Thought = nullStringValue(sourceThought)
		draft.Candidates, err = unmarshalBundle(candidates)
		if err != nil {
			return nil, err
		}

		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ドラフト一覧の走査に失敗しました: %w", err)
	}

	return drafts, nil
}

// CountByUserID はユーザーのDraft数を返す。
func (r *PostgresDraftRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM drafts WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ドラフト数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ DraftRepository = (*PostgresDraftRepo)(nil)
