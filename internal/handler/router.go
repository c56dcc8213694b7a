package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/folio/internal/metrics"
	"github.com/hitoshi/folio/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger *slog.Logger

	// ミドルウェア依存
	AdminCredentials  middleware.AdminCredentials
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           middleware.StatusRecorder

	// サービス
	AboutService      AboutServiceInterface
	ProjectService    ProjectServiceInterface
	ExperienceService ExperienceServiceInterface
	EducationService  EducationServiceInterface
	SocialService     SocialServiceInterface
	ContactService    ContactServiceInterface
	ContactRecorder   ContactRecorder
	BlogService       BlogServiceInterface

	// 公開コンテンツ
	WelcomeMessage string

	// アップロードファイルの配信ディレクトリ
	UploadDir string

	// 制作物フォームの最大サイズ（バイト）
	MaxUploadSize int64

	// Prometheusスクレイプ用（nilの場合/metricsは公開しない）
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Logging
//
// 変更系ルート（POST/PUT/DELETE）と/auth-checkにはBasic認証を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	aboutHandler := NewAboutHandler(deps.AboutService)
	projectHandler := NewProjectHandler(deps.ProjectService, deps.MaxUploadSize)
	experienceHandler := NewExperienceHandler(deps.ExperienceService)
	educationHandler := NewEducationHandler(deps.EducationService)
	socialHandler := NewSocialHandler(deps.SocialService)
	contactHandler := NewContactHandler(deps.ContactService, deps.ContactRecorder)
	blogHandler := NewBlogHandler(deps.BlogService)
	welcomeHandler := NewWelcomeHandler(deps.WelcomeMessage)
	authHandler := NewAuthHandler()

	basicAuth := middleware.NewBasicAuthMiddleware(deps.AdminCredentials)

	// --- 公開ルート ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/welcome", welcomeHandler.Welcome)
		r.Get("/api/About", aboutHandler.List)
		r.Get("/api/Projects", projectHandler.List)
		r.Get("/api/Experience", experienceHandler.List)
		r.Get("/api/Education", educationHandler.List)
		r.Get("/api/Social", socialHandler.List)
		r.Get("/api/Blog", blogHandler.List)

		// 問い合わせは専用の厳しいレート制限を重ねる
		r.With(deps.RateLimiter.ContactMiddleware()).Post("/api/contact", contactHandler.Submit)
	})

	// --- 管理ルート（Basic認証必須） ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())
		r.Use(basicAuth)

		r.Get("/auth-check", authHandler.Check)

		// 公開側のGETと同じパスに変更系メソッドを重ねるため、
		// サブルーターではなくフラットに登録する
		r.Post("/api/About", aboutHandler.Create)
		r.Put("/api/About/{id}", aboutHandler.Update)
		r.Delete("/api/About/{id}", aboutHandler.Delete)

		r.Post("/api/Projects", projectHandler.Create)
		r.Put("/api/Projects/{id}", projectHandler.Update)
		r.Delete("/api/Projects/{id}", projectHandler.Delete)

		r.Post("/api/Experience", experienceHandler.Create)
		r.Put("/api/Experience/{id}", experienceHandler.Update)
		r.Delete("/api/Experience/{id}", experienceHandler.Delete)

		r.Post("/api/Education", educationHandler.Create)
		r.Put("/api/Education/{id}", educationHandler.Update)
		r.Delete("/api/Education/{id}", educationHandler.Delete)

		r.Get("/api/contact-messages", contactHandler.ListMessages)
	})

	// --- 運用ルート ---
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// アップロードファイルの配信
	if deps.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
