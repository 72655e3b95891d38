package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/socialhub/internal/account"
	"github.com/hitoshi/socialhub/internal/auth"
	"github.com/hitoshi/socialhub/internal/config"
	"github.com/hitoshi/socialhub/internal/dashboard"
	"github.com/hitoshi/socialhub/internal/database"
	"github.com/hitoshi/socialhub/internal/draft"
	"github.com/hitoshi/socialhub/internal/generator"
	"github.com/hitoshi/socialhub/internal/handler"
	"github.com/hitoshi/socialhub/internal/history"
	"github.com/hitoshi/socialhub/internal/logger"
	"github.com/hitoshi/socialhub/internal/metrics"
	"github.com/hitoshi/socialhub/internal/middleware"
	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/orchestrator"
	"github.com/hitoshi/socialhub/internal/profile"
	"github.com/hitoshi/socialhub/internal/publisher"
	"github.com/hitoshi/socialhub/internal/repository"
	"github.com/hitoshi/socialhub/internal/security"
	"github.com/hitoshi/socialhub/internal/source"
	"github.com/hitoshi/socialhub/internal/worker/cleanup"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// メトリクスサーバーと期限切れセッションのクリーンアップジョブも起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	profileRepo := repository.NewPostgresProfileRepo(db)
	draftRepo := repository.NewPostgresDraftRepo(db)
	accountRepo := repository.NewPostgresAccountRepo(db)
	historyRepo := repository.NewPostgresHistoryRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. セキュリティサービスの初期化
	ssrfGuard := security.NewSSRFGuard()
	sanitizer := security.NewSourceSanitizer()

	// 5. ドメインサービスの初期化
	authService := auth.NewService(
		userRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)
	profileService := profile.NewService(profileRepo)
	draftService := draft.NewService(draftRepo)
	accountService := account.NewService(accountRepo)
	historyService := history.NewService(historyRepo)
	dashboardService := dashboard.NewService(draftRepo, historyRepo, accountRepo)

	generationClient := generator.NewClient(
		&http.Client{Timeout: cfg.GenerationTimeout},
		cfg.GenerationAPIURL, cfg.GenerationAPIKey,
		slog.Default(),
	)
	generationService := generator.NewService(generationClient, collector, slog.Default())

	sourceResolver := source.NewResolver(
		ssrfGuard.NewSafeClient(cfg.SourceFetchTimeout, cfg.SourceFetchMaxSize),
		ssrfGuard, sanitizer, cfg.SourceFetchMaxSize,
		slog.Default(),
	)

	// 6. 投稿パイプラインの初期化
	publishClient := &http.Client{Timeout: cfg.PublishTimeout}
	publisherRegistry := publisher.NewRegistry()
	publisherRegistry.Register(model.PlatformInstagram,
		publisher.NewHTTPPublisher(publishClient, model.PlatformInstagram, cfg.InstagramPublishURL, slog.Default()))
	publisherRegistry.Register(model.PlatformLinkedIn,
		publisher.NewHTTPPublisher(publishClient, model.PlatformLinkedIn, cfg.LinkedInPublishURL, slog.Default()))
	publisherRegistry.Register(model.PlatformTwitter,
		publisher.NewHTTPPublisher(publishClient, model.PlatformTwitter, cfg.TwitterPublishURL, slog.Default()))

	orch := orchestrator.NewOrchestrator(
		accountService, publisherRegistry, historyService,
		collector, slog.Default(), cfg.PublishMaxConcurrent,
	)

	// 7. ルーターの構築
	// configのレート制限はreq/min単位なのでreq/secに変換する
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.GenerationRate = rate.Limit(float64(cfg.RateLimitGeneration) / 60.0)
	rateLimiterCfg.GenerationBurst = cfg.RateLimitGeneration
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		SessionFinder:     sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		MetricsCollector: collector,
		Logger:           slog.Default(),

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		Generator:      generationService,
		SourceResolver: sourceResolver,
		ProfileService: profileService,

		DraftService: draftService,
		Orchestrator: orch,

		AccountService: accountService,

		HistoryService:   historyService,
		DashboardService: dashboardService,
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// メトリクスは内部ネットワーク向けに別ポートで公開する
	metricsServer := &http.Server{
		Addr:        ":" + cfg.MetricsPort,
		Handler:     metrics.SetupMetricsRoute(registry),
		ReadTimeout: 15 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// 期限切れセッションのクリーンアップジョブをバックグラウンド実行
	cleanupJob := cleanup.NewCleanupJob(db, slog.Default())
	go func() {
		// 起動直後に1回実行
		if err := cleanupJob.Run(ctx); err != nil {
			slog.Error("cleanup job failed", slog.String("error", err.Error()))
		}

		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := cleanupJob.Run(ctx); err != nil {
					slog.Error("cleanup job failed", slog.String("error", err.Error()))
				}
			}
		}
	}()

	go func() {
		slog.Info("metrics server starting",
			slog.String("addr", metricsServer.Addr),
		)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server listen error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown failed", slog.String("error", err.Error()))
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
