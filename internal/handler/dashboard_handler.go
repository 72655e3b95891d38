package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/socialhub/internal/dashboard"
)

// DashboardServiceInterface はダッシュボードハンドラーが必要とするサービスインターフェース。
type DashboardServiceInterface interface {
	Summarize(ctx context.Context, userID string) (*dashboard.Summary, error)
}

// DashboardHandler はダッシュボード集計のHTTPハンドラー。
type DashboardHandler struct {
	service DashboardServiceInterface
}

// NewDashboardHandler はDashboardHandlerを生成する。
func NewDashboardHandler(service DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// dashboardResponse はダッシュボード集計のAPIレスポンス。
type dashboardResponse struct {
	DraftCount         int                   `json:"draft_count"`
	PublishedCount     int                   `json:"published_count"`
	FailedCount        int                   `json:"failed_count"`
	ConnectedPlatforms []string              `json:"connected_platforms"`
	LatestPost         *historyEntryResponse `json:"latest_post,omitempty"`
}

// GetDashboard はユーザーのダッシュボード集計を返す。
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summarize(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	platforms := make([]string, 0, len(summary.ConnectedPlatforms))
	for _, p := range summary.ConnectedPlatforms {
		platforms = append(platforms, string(p))
	}

	resp := dashboardResponse{
		DraftCount:         summary.DraftCount,
		PublishedCount:     summary.PublishedCount,
		FailedCount:        summary.FailedCount,
		ConnectedPlatforms: platforms,
	}
	if summary.LatestPost != nil {
		latest := toHistoryEntryResponse(summary.LatestPost)
		resp.LatestPost = &latest
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
