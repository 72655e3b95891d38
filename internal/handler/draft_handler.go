package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/socialhub/internal/middleware"
	"github.com/hitoshi/socialhub/internal/model"
)

// DraftServiceInterface はドラフトハンドラーが必要とするサービスインターフェース。
type DraftServiceInterface interface {
	// Save は候補バンドルをドラフトとして永続化する。
	Save(ctx context.Context, userID string, source model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error)
	// Get は所有者チェック付きでドラフトを取得する。
	Get(ctx context.Context, userID, draftID string) (*model.Draft, error)
	// List はユーザーのドラフト一覧を作成日時の降順で返す。
	List(ctx context.Context, userID string) ([]*model.Draft, error)
}

// PublishOrchestratorInterface はドラフトの一括投稿インターフェース。
type PublishOrchestratorInterface interface {
	Publish(ctx context.Context, draft *model.Draft) (model.PublishReport, error)
}

// DraftHandler はドラフト管理と投稿実行のHTTPハンドラー。
type DraftHandler struct {
	service      DraftServiceInterface
	orchestrator PublishOrchestratorInterface
}

// NewDraftHandler はDraftHandlerを生成する。
func NewDraftHandler(service DraftServiceInterface, orchestrator PublishOrchestratorInterface) *DraftHandler {
	return &DraftHandler{
		service:      service,
		orchestrator: orchestrator,
	}
}

// candidateInput は投稿候補のリクエスト形式。
type candidateInput struct {
	ClipRef string `json:"clip_ref"`
	Caption string `json:"caption"`
	Text    string `json:"text"`
}

// saveDraftRequest はドラフト保存リクエストのボディ。
type saveDraftRequest struct {
	Source struct {
		URL     string `json:"url"`
		Thought string `json:"thought"`
	} `json:"source"`
	Candidates map[string][]candidateInput `json:"candidates"`
}

// candidateResponse は投稿候補のAPIレスポンス。
type candidateResponse struct {
	Platform string `json:"platform"`
	ClipRef  string `json:"clip_ref,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Text     string `json:"text,omitempty"`
	Status   string `json:"status"`
}

// sourceResponse はドラフトのソース参照のAPIレスポンス。
type sourceResponse struct {
	URL     string `json:"url,omitempty"`
	Thought string `json:"thought,omitempty"`
}

// draftResponse はドラフトのAPIレスポンス。
type draftResponse struct {
	ID         string                         `json:"id"`
	Source     sourceResponse                 `json:"source"`
	Candidates map[string][]candidateResponse `json:"candidates"`
	CreatedAt  time.Time                      `json:"created_at"`
}

// outcomeResponse はpublishタスク1件の結果のAPIレスポンス。
type outcomeResponse struct {
	Index         int    `json:"index"`
	Status        string `json:"status"`
	PostURL       string `json:"post_url,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// SaveDraft はレビュー済みの候補バンドルをドラフトとして保存する。
// POST /api/drafts
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	candidates, err := toCandidateBundle(req.Candidates)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	source := model.SourceRef{URL: req.Source.URL, Thought: req.Source.Thought}

	draft, err := h.service.Save(r.Context(), userID, source, candidates)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toDraftResponse(draft))
}

// ListDrafts はユーザーのドラフト一覧を作成日時の降順で返す。
// GET /api/drafts
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	drafts, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]draftResponse, 0, len(drafts))
	for _, draft := range drafts {
		responses = append(responses, toDraftResponse(draft))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"drafts": responses})
}

// GetDraft はドラフト詳細を取得する。
// GET /api/drafts/{id}
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	draftID := chi.URLParam(r, "id")

	draft, err := h.service.Get(r.Context(), userID, draftID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toDraftResponse(draft))
}

// PublishDraft はドラフトの全候補を投稿し、結果レポートを返す。
// POST /api/drafts/{id}/publish
func (h *DraftHandler) PublishDraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	draftID := chi.URLParam(r, "id")

	draft, err := h.service.Get(r.Context(), userID, draftID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	report, err := h.orchestrator.Publish(r.Context(), draft)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"report": toReportResponse(report)})
}

// --- 変換ヘルパー ---

// toCandidateBundle はリクエストの候補マップをCandidateBundleに変換する。
// 不明なプラットフォームキーが含まれる場合はエラーを返す。
func toCandidateBundle(input map[string][]candidateInput) (model.CandidateBundle, error) {
	bundle := model.NewCandidateBundle()
	for key, candidates := range input {
		platform := model.Platform(key)
		if !platform.Valid() {
			return nil, model.NewInvalidPlatformError(key)
		}
		for _, c := range candidates {
			bundle[platform] = append(bundle[platform], model.PostCandidate{
				Platform: platform,
				Body: model.PostBody{
					ClipRef: c.ClipRef,
					Caption: c.Caption,
					Text:    c.Text,
				},
			})
		}
	}
	return bundle, nil
}

// toBundleResponse はCandidateBundleをAPIレスポンスに変換する。
// 全プラットフォームのキーを常に含める。
func toBundleResponse(bundle model.CandidateBundle) map[string][]candidateResponse {
	resp := make(map[string][]candidateResponse, len(model.AllPlatforms))
	for _, platform := range model.AllPlatforms {
		candidates := make([]candidateResponse, 0, len(bundle[platform]))
		for _, c := range bundle[platform] {
			candidates = append(candidates, candidateResponse{
				Platform: string(c.Platform),
				ClipRef:  c.Body.ClipRef,
				Caption:  c.Body.Caption,
				Text:     c.Body.Text,
				Status:   string(c.Status),
			})
		}
		resp[string(platform)] = candidates
	}
	return resp
}

// toDraftResponse はmodel.DraftからAPIレスポンスに変換する。
func toDraftResponse(draft *model.Draft) draftResponse {
	return draftResponse{
		ID: draft.ID,
		Source: sourceResponse{
			URL:     draft.Source.URL,
			Thought: draft.Source.Thought,
		},
		Candidates: toBundleResponse(draft.Candidates),
		CreatedAt:  draft.CreatedAt,
	}
}

// toReportResponse はPublishReportをAPIレスポンスに変換する。
func toReportResponse(report model.PublishReport) map[string][]outcomeResponse {
	resp := make(map[string][]outcomeResponse, len(report))
	for platform, outcomes := range report {
		converted := make([]outcomeResponse, 0, len(outcomes))
		for _, o := range outcomes {
			converted = append(converted, outcomeResponse{
				Index:         o.Index,
				Status:        string(o.Status),
				PostURL:       o.PostURL,
				FailureReason: o.FailureReason,
			})
		}
		resp[string(platform)] = converted
	}
	return resp
}

// --- 共通ヘルパー ---

// requireUserID はコンテキストから認証済みユーザーIDを取得する。
// 取得できない場合は401レスポンスを書き込みfalseを返す。
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
			Code:     "UNAUTHORIZED",
			Message:  "認証が必要です。",
			Category: "auth",
			Action:   "ログインしてください。",
		})
		return "", false
	}
	return userID, true
}

// writeInvalidRequestBody はリクエストボディの解析失敗レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidURL, model.ErrCodeInvalidSource, model.ErrCodeInvalidPlatform, model.ErrCodeInvalidFilter:
		return http.StatusBadRequest
	case model.ErrCodeSSRFBlocked:
		return http.StatusForbidden
	case model.ErrCodeSourceFetchFailed, model.ErrCodeGenerationFailed:
		return http.StatusBadGateway
	case model.ErrCodeDraftNotFound, model.ErrCodeProfileNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodePersistenceFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
