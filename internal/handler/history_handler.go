package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/socialhub/internal/model"
)

// HistoryServiceInterface は履歴ハンドラーが必要とするサービスインターフェース。
type HistoryServiceInterface interface {
	Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error)
}

// HistoryHandler は投稿履歴のHTTPハンドラー。
type HistoryHandler struct {
	service HistoryServiceInterface
}

// NewHistoryHandler はHistoryHandlerを生成する。
func NewHistoryHandler(service HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// historyEntryResponse は投稿履歴1件のAPIレスポンス。
type historyEntryResponse struct {
	ID            string    `json:"id"`
	Platform      string    `json:"platform"`
	OriginDraftID string    `json:"origin_draft_id"`
	Content       struct {
		ClipRef string `json:"clip_ref,omitempty"`
		Caption string `json:"caption,omitempty"`
		Text    string `json:"text,omitempty"`
	} `json:"content"`
	PostURL       string    `json:"post_url,omitempty"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason,omitempty"`
	PostedAt      time.Time `json:"posted_at"`
}

// ListHistory は投稿履歴を投稿日時の降順で返す。
// platformとdate（YYYY-MM-DD）のクエリパラメータで絞り込める。
// GET /api/history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := model.HistoryFilter{}

	if platform := r.URL.Query().Get("platform"); platform != "" {
		filter.Platform = model.Platform(platform)
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			handleServiceError(w, model.NewInvalidFilterError("日付はYYYY-MM-DD形式で指定してください"))
			return
		}
		filter.Date = &date
	}

	entries, err := h.service.Query(r.Context(), userID, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toHistoryEntryResponse(entry))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"history": responses})
}

// toHistoryEntryResponse はmodel.PostHistoryEntryからAPIレスポンスに変換する。
func toHistoryEntryResponse(entry *model.PostHistoryEntry) historyEntryResponse {
	resp := historyEntryResponse{
		ID:            entry.ID,
		Platform:      string(entry.Platform),
		OriginDraftID: entry.OriginDraftID,
		PostURL:       entry.PostURL,
		Status:        string(entry.Status),
		FailureReason: entry.FailureReason,
		PostedAt:      entry.PostedAt,
	}
	resp.Content.ClipRef = entry.Content.ClipRef
	resp.Content.Caption = entry.Content.Caption
	resp.Content.Text = entry.Content.Text
	return resp
}
