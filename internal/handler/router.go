package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/socialhub/internal/metrics"
	"github.com/hitoshi/socialhub/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig
	MetricsCollector  metrics.MetricsCollector
	Logger            *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// コンテンツ生成
	Generator      GeneratorInterface
	SourceResolver SourceResolverInterface

	// プロファイル
	ProfileService ProfileServiceInterface

	// ドラフトと投稿
	DraftService DraftServiceInterface
	Orchestrator PublishOrchestratorInterface

	// アカウント接続
	AccountService AccountServiceInterface

	// 履歴とダッシュボード
	HistoryService   HistoryServiceInterface
	DashboardService DashboardServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//	→ Session → CSRF → RateLimit(General)
//
// 認証ルート（/auth/*）とヘルスチェックはセッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsCollector != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsCollector))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	generateHandler := NewGenerateHandler(deps.Generator, deps.SourceResolver, deps.ProfileService)
	profileHandler := NewProfileHandler(deps.ProfileService)
	draftHandler := NewDraftHandler(deps.DraftService, deps.Orchestrator)
	accountHandler := NewAccountHandler(deps.AccountService)
	historyHandler := NewHistoryHandler(deps.HistoryService)
	dashboardHandler := NewDashboardHandler(deps.DashboardService)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ブランドプロファイル
		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/", profileHandler.GetProfile)
			r.Put("/", profileHandler.UpdateProfile)
		})

		// 候補生成（生成専用レート制限を適用）
		r.With(deps.RateLimiter.GenerationMiddleware()).Post("/api/generate", generateHandler.Generate)

		// ドラフト管理と投稿
		r.Route("/api/drafts", func(r chi.Router) {
			r.Post("/", draftHandler.SaveDraft)
			r.Get("/", draftHandler.ListDrafts)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", draftHandler.GetDraft)
				r.Post("/publish", draftHandler.PublishDraft)
			})
		})

		// プラットフォーム接続
		r.Route("/api/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.ListAccounts)

			r.Route("/{platform}", func(r chi.Router) {
				r.Post("/connect", accountHandler.ConnectAccount)
				r.Delete("/", accountHandler.DisconnectAccount)
			})
		})

		// 投稿履歴
		r.Get("/api/history", historyHandler.ListHistory)

		// ダッシュボード
		r.Get("/api/dashboard", dashboardHandler.GetDashboard)
	})

	return r
}
