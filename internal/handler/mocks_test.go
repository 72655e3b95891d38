package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/hitoshi/socialhub/internal/dashboard"
	"github.com/hitoshi/socialhub/internal/middleware"
	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/profile"
	"github.com/hitoshi/socialhub/internal/source"
)

// --- モック定義 ---

type mockAuthService struct {
	signInFn         func(ctx context.Context) (*model.User, *model.Session, error)
	logoutFn         func(ctx context.Context, sessionID string) error
	getCurrentUserFn func(ctx context.Context, sessionID string) (*model.User, error)
}

func (m *mockAuthService) SignInAnonymously(ctx context.Context) (*model.User, *model.Session, error) {
	return m.signInFn(ctx)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if m.getCurrentUserFn != nil {
		return m.getCurrentUserFn(ctx, sessionID)
	}
	return nil, model.NewUserNotFoundError()
}

type mockGenerator struct {
	generateFn func(ctx context.Context, req model.GenerationRequest) (model.CandidateBundle, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req model.GenerationRequest) (model.CandidateBundle, error) {
	return m.generateFn(ctx, req)
}

type mockResolver struct {
	resolveFn func(ctx context.Context, rawURL string) (*source.VideoMetadata, error)
}

func (m *mockResolver) Resolve(ctx context.Context, rawURL string) (*source.VideoMetadata, error) {
	return m.resolveFn(ctx, rawURL)
}

type mockProfileService struct {
	getOrCreateFn func(ctx context.Context, userID string) (*model.BrandProfile, error)
	updateFn      func(ctx context.Context, userID string, input profile.UpdateInput) (*model.BrandProfile, error)
}

func (m *mockProfileService) GetOrCreate(ctx context.Context, userID string) (*model.BrandProfile, error) {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, userID)
	}
	return model.DefaultBrandProfile(userID), nil
}

func (m *mockProfileService) Update(ctx context.Context, userID string, input profile.UpdateInput) (*model.BrandProfile, error) {
	return m.updateFn(ctx, userID, input)
}

type mockDraftService struct {
	saveFn func(ctx context.Context, userID string, src model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error)
	getFn  func(ctx context.Context, userID, draftID string) (*model.Draft, error)
	listFn func(ctx context.Context, userID string) ([]*model.Draft, error)
}

func (m *mockDraftService) Save(ctx context.Context, userID string, src model.SourceRef, candidates model.CandidateBundle) (*model.Draft, error) {
	return m.saveFn(ctx, userID, src, candidates)
}

func (m *mockDraftService) Get(ctx context.Context, userID, draftID string) (*model.Draft, error) {
	return m.getFn(ctx, userID, draftID)
}

func (m *mockDraftService) List(ctx context.Context, userID string) ([]*model.Draft, error) {
	return m.listFn(ctx, userID)
}

type mockOrchestrator struct {
	publishFn func(ctx context.Context, draft *model.Draft) (model.PublishReport, error)
}

func (m *mockOrchestrator) Publish(ctx context.Context, draft *model.Draft) (model.PublishReport, error) {
	return m.publishFn(ctx, draft)
}

type mockAccountService struct {
	connectFn    func(ctx context.Context, userID string, platform model.Platform, credential string) (*model.ConnectedAccount, error)
	disconnectFn func(ctx context.Context, userID string, platform model.Platform) error
	listFn       func(ctx context.Context, userID string) ([]*model.ConnectedAccount, error)
}

func (m *mockAccountService) Connect(ctx context.Context, userID string, platform model.Platform, credential string) (*model.ConnectedAccount, error) {
	return m.connectFn(ctx, userID, platform, credential)
}

func (m *mockAccountService) Disconnect(ctx context.Context, userID string, platform model.Platform) error {
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx, userID, platform)
	}
	return nil
}

func (m *mockAccountService) List(ctx context.Context, userID string) ([]*model.ConnectedAccount, error) {
	return m.listFn(ctx, userID)
}

type mockHistoryService struct {
	queryFn func(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error)
}

func (m *mockHistoryService) Query(ctx context.Context, userID string, filter model.HistoryFilter) ([]*model.PostHistoryEntry, error) {
	return m.queryFn(ctx, userID, filter)
}

type mockDashboardService struct {
	summarizeFn func(ctx context.Context, userID string) (*dashboard.Summary, error)
}

func (m *mockDashboardService) Summarize(ctx context.Context, userID string) (*dashboard.Summary, error) {
	return m.summarizeFn(ctx, userID)
}

type mockSessionFinder struct {
	findFn func(ctx context.Context, id string) (*model.Session, error)
}

func (m *mockSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	return m.findFn(ctx, id)
}

// --- テストヘルパー ---

// authedRequest は認証済みユーザーIDをコンテキストに注入したリクエストを生成する。
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
}
