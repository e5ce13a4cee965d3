// Package app はアプリケーションの起動と依存関係のワイヤリングを提供する。
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

	"github.com/hitoshi/sitedesk/internal/auth"
	"github.com/hitoshi/sitedesk/internal/catalog"
	"github.com/hitoshi/sitedesk/internal/config"
	"github.com/hitoshi/sitedesk/internal/database"
	"github.com/hitoshi/sitedesk/internal/handler"
	"github.com/hitoshi/sitedesk/internal/inquiry"
	"github.com/hitoshi/sitedesk/internal/logger"
	"github.com/hitoshi/sitedesk/internal/metrics"
	"github.com/hitoshi/sitedesk/internal/middleware"
	"github.com/hitoshi/sitedesk/internal/order"
	"github.com/hitoshi/sitedesk/internal/repository"
	"github.com/hitoshi/sitedesk/internal/security"
	"github.com/hitoshi/sitedesk/internal/upload"
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

	// hashpw はDB・JWT設定を必要としないため、フル初期化をスキップする
	if cmd == CommandHashpw {
		return runHashpw(w, args[1:])
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. リポジトリの初期化
	adminRepo := repository.NewPostgresAdminRepo(db)
	serviceRepo := repository.NewPostgresServiceRepo(db)
	projectRepo := repository.NewPostgresProjectRepo(db)
	quoteRepo := repository.NewPostgresQuoteRepo(db)
	contactRepo := repository.NewPostgresContactRepo(db)
	orderRepo := repository.NewPostgresOrderRepo(db)

	// 4. ドメインサービスの初期化
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(adminRepo, issuer, collector)

	uploader := upload.NewValidator(cfg.UploadDir, cfg.MaxUploadSize, collector)
	sanitizer := security.NewTextSanitizer()

	catalogService := catalog.NewService(serviceRepo, projectRepo)
	inquiryService := inquiry.NewService(quoteRepo, contactRepo, sanitizer)
	orderService := order.NewService(orderRepo, serviceRepo)

	// 5. レート制限の初期化（公開フォーム投稿のみ。ログインには適用しない）
	rlCfg := middleware.DefaultRateLimiterConfig()
	rlCfg.IntakeRate = rate.Limit(float64(cfg.RateLimitIntake) / 60.0)
	rlCfg.IntakeBurst = cfg.RateLimitIntake
	rateLimiter := middleware.NewRateLimiter(rlCfg)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		TokenVerifier:     issuer,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		HTTPMetrics:       collector,

		AuthService:    authService,
		CatalogService: catalogService,
		InquiryService: inquiryService,
		OrderService:   orderService,

		Uploader:  uploader,
		UploadDir: cfg.UploadDir,

		IntakeMetrics: collector,
		DB:            db,
		Gatherer:      registry,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
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

// runHashpw は管理者パスワードのbcryptダイジェストを生成して出力する。
// 生成したダイジェストはadminsテーブルへの手動登録に使用する。
func runHashpw(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hashpw <password>")
	}

	digest, err := auth.HashPassword(args[0])
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintln(w, digest)
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
