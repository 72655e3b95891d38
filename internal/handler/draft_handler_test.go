package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/socialhub/internal/model"
)

// testDraft はハンドラーテスト用のドラフトを生成する。
func testDraft() *model.Draft {
	bundle := model.NewCandidateBundle()
	bundle[model.PlatformInstagram] = []model.PostCandidate{
		{Platform: model.PlatformInstagram, Body: model.PostBody{ClipRef: "clip-1", Caption: "キャプション1"}},
	}
	bundle[model.PlatformTwitter] = []model.PostCandidate{
		{Platform: model.PlatformTwitter, Body: model.PostBody{Text: "ツイート1"}},
		{Platform: model.PlatformTwitter, Body: model.PostBody{Text: "ツイート2"}},
	}
	return &model.Draft{
		ID:         "draft-1",
		UserID:     "user-1",
		Source:     model.SourceRef{URL: "https://www.youtube.com/watch?v=abc123"},
		Candidates: bundle,
		CreatedAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// withURLParam はchiのURLパラメータをリクエストコンテキストに注入する。
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestSaveDraft_Success(t *testing.T) {
	var savedSource model.SourceRef
	var savedBundle model.CandidateBundle
	svc := &mockDraftService{
		saveFn: func(ctx context.Context, userID string, src model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want user-1", userID)
			}
			savedSource = src
			savedBundle = candidates
			return testDraft(), nil
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	body := `{
		"source": {"url": "https://www.youtube.com/watch?v=abc123"},
		"candidates": {
			"instagram": [{"clip_ref": "clip-1", "caption": "キャプション1"}],
			"twitter": [{"text": "ツイート1"}, {"text": "ツイート2"}]
		}
	}`
	req := authedRequest(http.MethodPost, "/api/drafts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.SaveDraft(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if savedSource.URL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("saved source URL = %q", savedSource.URL)
	}
	if len(savedBundle[model.PlatformTwitter]) != 2 {
		t.Errorf("twitter candidates = %d, want 2", len(savedBundle[model.PlatformTwitter]))
	}

	var draft draftResponse
	if err := json.NewDecoder(resp.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if draft.ID != "draft-1" {
		t.Errorf("draft ID = %q, want draft-1", draft.ID)
	}
	// 候補のないプラットフォームもキーとして含まれること
	if _, ok := draft.Candidates["linkedin"]; !ok {
		t.Error("response should include linkedin key even without candidates")
	}
}

func TestSaveDraft_UnknownPlatformKey(t *testing.T) {
	svc := &mockDraftService{
		saveFn: func(ctx context.Context, userID string, src model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error) {
			t.Error("save must not be called for an invalid platform key")
			return nil, nil
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	body := `{"candidates": {"myspace": [{"text": "古い"}]}}`
	req := authedRequest(http.MethodPost, "/api/drafts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.SaveDraft(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var errResp apiErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	if errResp.Code != "INVALID_PLATFORM" {
		t.Errorf("error code = %q, want INVALID_PLATFORM", errResp.Code)
	}
}

func TestSaveDraft_InvalidBody(t *testing.T) {
	h := NewDraftHandler(&mockDraftService{}, &mockOrchestrator{})

	req := authedRequest(http.MethodPost, "/api/drafts", strings.NewReader("{invalid"))
	w := httptest.NewRecorder()

	h.SaveDraft(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestSaveDraft_Unauthenticated(t *testing.T) {
	h := NewDraftHandler(&mockDraftService{}, &mockOrchestrator{})

	req := httptest.NewRequest(http.MethodPost, "/api/drafts", strings.NewReader("{}"))
	w := httptest.NewRecorder()

	h.SaveDraft(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestListDrafts_ReturnsAll(t *testing.T) {
	svc := &mockDraftService{
		listFn: func(ctx context.Context, userID string) ([]*model.Draft, error) {
			return []*model.Draft{testDraft()}, nil
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	req := authedRequest(http.MethodGet, "/api/drafts", nil)
	w := httptest.NewRecorder()

	h.ListDrafts(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Drafts []draftResponse `json:"drafts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Drafts) != 1 {
		t.Fatalf("drafts = %d, want 1", len(body.Drafts))
	}
	if body.Drafts[0].ID != "draft-1" {
		t.Errorf("draft ID = %q, want draft-1", body.Drafts[0].ID)
	}
}

func TestListDrafts_Empty(t *testing.T) {
	svc := &mockDraftService{
		listFn: func(ctx context.Context, userID string) ([]*model.Draft, error) {
			return nil, nil
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	req := authedRequest(http.MethodGet, "/api/drafts", nil)
	w := httptest.NewRecorder()

	h.ListDrafts(w, req)

	// 空でもnullではなく空配列を返すこと
	if !strings.Contains(w.Body.String(), `"drafts":[]`) {
		t.Errorf("response should contain empty drafts array, got %s", w.Body.String())
	}
}

func TestGetDraft_Found(t *testing.T) {
	svc := &mockDraftService{
		getFn: func(ctx context.Context, userID, draftID string) (*model.Draft, error) {
			if draftID != "draft-1" {
				t.Errorf("draftID = %q, want draft-1", draftID)
			}
			return testDraft(), nil
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	req := withURLParam(authedRequest(http.MethodGet, "/api/drafts/draft-1", nil), "id", "draft-1")
	w := httptest.NewRecorder()

	h.GetDraft(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var draft draftResponse
	json.NewDecoder(resp.Body).Decode(&draft)
	if draft.ID != "draft-1" {
		t.Errorf("draft ID = %q, want draft-1", draft.ID)
	}
}

func TestGetDraft_NotFound(t *testing.T) {
	svc := &mockDraftService{
		getFn: func(ctx context.Context, userID, draftID string) (*model.Draft, error) {
			return nil, model.NewDraftNotFoundError(draftID)
		},
	}
	h := NewDraftHandler(svc, &mockOrchestrator{})

	req := withURLParam(authedRequest(http.MethodGet, "/api/drafts/missing", nil), "id", "missing")
	w := httptest.NewRecorder()

	h.GetDraft(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var errResp apiErrorResponse
	json.NewDecoder(resp.Body).Decode(&errResp)
	if errResp.Code != "DRAFT_NOT_FOUND" {
		t.Errorf("error code = %q, want DRAFT_NOT_FOUND", errResp.Code)
	}
}

func TestPublishDraft_ReturnsReport(t *testing.T) {
	svc := &mockDraftService{
		getFn: func(ctx context.Context, userID, draftID string) (*model.Draft, error) {
			return testDraft(), nil
		},
	}
	orch := &mockOrchestrator{
		publishFn: func(ctx context.Context, draft *model.Draft) (model.PublishReport, error) {
			if draft.ID != "draft-1" {
				t.Errorf("draft ID = %q, want draft-1", draft.ID)
			}
			report := model.PublishReport{
				model.PlatformInstagram: {
					{Platform: model.PlatformInstagram, Index: 0, Status: model.OutcomeSuccess, PostURL: "https://instagram.example/p/1"},
				},
				model.PlatformLinkedIn: {},
				model.PlatformTwitter: {
					{Platform: model.PlatformTwitter, Index: 0, Status: model.OutcomeSuccess, PostURL: "https://twitter.example/s/1"},
					{Platform: model.PlatformTwitter, Index: 1, Status: model.OutcomeFailed, FailureReason: model.FailureReasonNotConnected},
				},
			}
			return report, nil
		},
	}
	h := NewDraftHandler(svc, orch)

	req := withURLParam(authedRequest(http.MethodPost, "/api/drafts/draft-1/publish", nil), "id", "draft-1")
	w := httptest.NewRecorder()

	h.PublishDraft(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		Report map[string][]outcomeResponse `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Report["twitter"]) != 2 {
		t.Fatalf("twitter outcomes = %d, want 2", len(body.Report["twitter"]))
	}
	if body.Report["twitter"][1].FailureReason != "not_connected" {
		t.Errorf("failure reason = %q, want not_connected", body.Report["twitter"][1].FailureReason)
	}
	if body.Report["instagram"][0].PostURL != "https://instagram.example/p/1" {
		t.Errorf("post URL = %q", body.Report["instagram"][0].PostURL)
	}
	if outcomes, ok := body.Report["linkedin"]; !ok || len(outcomes) != 0 {
		t.Error("report should include linkedin key with empty outcomes")
	}
}

func TestPublishDraft_DraftNotFound(t *testing.T) {
	svc := &mockDraftService{
		getFn: func(ctx context.Context, userID, draftID string) (*model.Draft, error) {
			return nil, model.NewDraftNotFoundError(draftID)
		},
	}
	orch := &mockOrchestrator{
		publishFn: func(ctx context.Context, draft *model.Draft) (model.PublishReport, error) {
			t.Error("publish must not be called when the draft does not exist")
			return nil, nil
		},
	}
	h := NewDraftHandler(svc, orch)

	req := withURLParam(authedRequest(http.MethodPost, "/api/drafts/missing/publish", nil), "id", "missing")
	w := httptest.NewRecorder()

	h.PublishDraft(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}
