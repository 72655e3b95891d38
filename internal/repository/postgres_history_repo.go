package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hitoshi/socialhub/internal/model"
)

// PostgresHistoryRepo はPostgreSQLを使用した投稿履歴リポジトリ。
// Appendが唯一の書き込み操作で、各エントリは単一INSERTとしてアトミックに記録される。
type PostgresHistoryRepo struct {
	db *sql.DB
}

// NewPostgresHistoryRepo はPostgresHistoryRepoを生成する。
func NewPostgresHistoryRepo(db *sql.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

// storedBody はJSONBカラムに格納する本文スナップショットの形式。
type storedBody struct {
	ClipRef string `json:"clip_ref,omitempty"`
	Caption string `json:"caption,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Append は投稿履歴エントリを追記する。
func (r *PostgresHistoryRepo) Append(ctx context.Context, entry *model.PostHistoryEntry) error {
	content, err := json.Marshal(storedBody{
		ClipRef: entry.Content.ClipRef,
		Caption: entry.Content.Caption,
		Text:    entry.Content.Text,
	})
	if err != nil {
		return fmt.Errorf("本文スナップショットのシリアライズに失敗しました: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO post_history (id, user_id, platform, origin_draft_id, content, post_url, status, failure_reason, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.UserID, string(entry.Platform), entry.OriginDraftID,
		content, nullString(entry.PostURL), string(entry.Status),
		nullString(entry.FailureReason), entry.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("投稿履歴の追記に失敗しました: %w", err)
	}
	return nil
}

// ListByUserID はユーザーの投稿履歴をフィルタ条件付きでposted_at降順で返す。
// フィルタのゼロ値フィールドは条件なしとして扱う。
func (r *PostgresHistoryRepo) ListByUserID(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error) {
	query := `SELECT id, user_id, platform, origin_draft_id, content, post_url, status, failure_reason, posted_at
	          FROM post_history WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Platform != "" {
		args = append(args, string(filter.Platform))
		query += " AND platform = $" + strconv.Itoa(len(args))
	}
	if filter.Date != nil {
		dayStart := filter.Date.UTC().Truncate(24 * time.Hour)
		args = append(args, dayStart)
		query += " AND posted_at >= $" + strconv.Itoa(len(args))
		args = append(args, dayStart.Add(24*time.Hour))
		query += " AND posted_at < $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY posted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("投稿履歴の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var entries []*model.PostHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("投稿履歴の走査に失敗しました: %w", err)
	}

	return entries, nil
}

// CountByUserAndStatus はユーザーの指定結果種別のエントリ数を返す。
func (r *PostgresHistoryRepo) CountByUserAndStatus(ctx context.Context, userID string, status model.OutcomeStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_history WHERE user_id = $1 AND status = $2`,
		userID, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("投稿履歴数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// FindLatestByUserID はユーザーの最新の履歴エントリを返す。存在しない場合はnilを返す。
func (r *PostgresHistoryRepo) FindLatestByUserID(ctx context.Context, userID string) (*model.PostHistoryEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, platform, origin_draft_id, content, post_url, status, failure_reason, posted_at
		 FROM post_history WHERE user_id = $1 ORDER BY posted_at DESC LIMIT 1`,
		userID,
	)

	entry, err := scanHistoryEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// rowScanner はsql.Rowとsql.Rowsの共通スキャンインターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryEntry(row rowScanner) (*model.PostHistoryEntry, error) {
	entry := &model.PostHistoryEntry{}
	var content []byte
	var postURL, failureReason sql.NullString

	err := row.Scan(&entry.ID, &entry.UserID, &entry.Platform, &entry.OriginDraftID,
		&content, &postURL, &entry.Status, &failureReason, &entry.PostedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("投稿履歴行の読み取りに失敗しました: %w", err)
	}

	var body storedBody
	if err := json.Unmarshal(content, &body); err != nil {
		return nil, fmt.Errorf("本文スナップショットの復元に失敗しました: %w", err)
	}
	entry.Content = model.PostBody{ClipRef: body.ClipRef, Caption: body.Caption, Text: body.Text}
	entry.PostURL = nullStringValue(postURL)
	entry.FailureReason = nullStringValue(failureReason)

	return entry, nil
}

// compile-time interface check
var _ HistoryRepository = (*PostgresHistoryRepo)(nil)
