package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/sitedesk/internal/metrics"
	"github.com/hitoshi/sitedesk/internal/middleware"
)

// CatalogServiceInterface はサービス・プロジェクト両方のカタログ操作をまとめたインターフェース。
type CatalogServiceInterface interface {
	ServiceCatalogInterface
	ProjectCatalogInterface
}

// HealthPinger はヘルスチェックで使用するデータベース疎通確認のインターフェース。
type HealthPinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	HTTPMetrics       middleware.HTTPMetrics

	// サービス層
	AuthService    AuthServiceInterface
	CatalogService CatalogServiceInterface
	InquiryService InquiryServiceInterface
	OrderService   OrderServiceInterface

	// アップロード
	Uploader  UploadAcceptor
	UploadDir string

	// 運用
	IntakeMetrics IntakeMetrics
	DB            HealthPinger
	Gatherer      prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 公開ルート（一覧参照・フォーム受付・ログイン・静的配信）と
// Bearerトークン必須の管理ルートをグループで分離する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	}

	authHandler := NewAuthHandler(deps.AuthService)
	serviceHandler := NewServiceHandler(deps.CatalogService, deps.Uploader)
	projectHandler := NewProjectHandler(deps.CatalogService, deps.Uploader)
	inquiryHandler := NewInquiryHandler(deps.InquiryService, deps.IntakeMetrics)
	orderHandler := NewOrderHandler(deps.OrderService)

	// --- 認証不要のルート ---

	r.Post("/api/admin/login", authHandler.Login)

	r.Get("/api/services", serviceHandler.ListServices)
	r.Get("/api/projects", projectHandler.ListProjects)

	// 公開フォーム受付（IPごとのレート制限付き）
	if deps.RateLimiter != nil {
		intake := deps.RateLimiter.IntakeMiddleware()
		r.With(intake).Post("/api/quote-requests", inquiryHandler.SubmitQuote)
		r.With(intake).Post("/api/contact-submissions", inquiryHandler.SubmitContact)
	} else {
		r.Post("/api/quote-requests", inquiryHandler.SubmitQuote)
		r.Post("/api/contact-submissions", inquiryHandler.SubmitContact)
	}

	// アップロード済みファイルの読み取り専用配信
	if deps.UploadDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
		r.Method(http.MethodGet, "/uploads/*", fileServer)
	}

	// 運用エンドポイント
	r.Get("/health", newHealthHandler(deps.DB))
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- Bearerトークンが必要な管理ルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewBearerAuthMiddleware(deps.TokenVerifier))

		// サービス管理
		r.Post("/api/services", serviceHandler.CreateService)
		r.Route("/api/services/{id}", func(r chi.Router) {
			r.Put("/", serviceHandler.UpdateService)
			r.Delete("/", serviceHandler.DeleteService)
		})

		// プロジェクト管理
		r.Post("/api/projects", projectHandler.CreateProject)
		r.Route("/api/projects/{id}", func(r chi.Router) {
			r.Put("/", projectHandler.UpdateProject)
			r.Delete("/", projectHandler.DeleteProject)
		})

		// フォーム受付内容の閲覧
		r.Get("/api/quote-requests", inquiryHandler.ListQuotes)
		r.Get("/api/contact-submissions", inquiryHandler.ListContacts)

		// 注文管理
		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", orderHandler.ListOrders)
			r.Post("/", orderHandler.CreateOrder)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", orderHandler.UpdateOrderStatus)
				r.Delete("/", orderHandler.DeleteOrder)
			})
		})
	})

	return r
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// newHealthHandler はデータベース疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(db HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
