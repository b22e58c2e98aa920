package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightlaunch/academy-cms-backend/api/controllers"
	"github.com/brightlaunch/academy-cms-backend/api/middleware"
	"github.com/brightlaunch/academy-cms-backend/internal/auth"
	"github.com/brightlaunch/academy-cms-backend/internal/editor"
	"github.com/brightlaunch/academy-cms-backend/internal/media"
	"github.com/brightlaunch/academy-cms-backend/pkg/auth/session"
	"github.com/brightlaunch/academy-cms-backend/pkg/config"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/metrics"
	"github.com/brightlaunch/academy-cms-backend/pkg/redis"
)

type sessionGate interface {
	session.AccessSessionChecker
	session.EditModeChecker
}

func passthrough(next http.Handler) http.Handler { return next }

// NewRouter assembles the full HTTP surface: public content reads, the auth
// endpoints, and the edit-mode-gated admin API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger, storagePinger controllers.Pinger,
	redisClient *redis.Client,
	sessionMgr sessionGate,
	authService auth.Service,
	registry *editor.Registry,
	mediaService media.Service,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	// A nil concrete client stays out of the interface values so the ready
	// probe reports it unconfigured instead of panicking.
	var redisPinger controllers.Pinger
	loginLimiter := passthrough
	if redisClient != nil {
		redisPinger = redisClient
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger, storagePinger))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public/v1", func(r chi.Router) {
		r.Get("/content/{contentType}", controllers.ContentListPublic(registry, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionMgr, logg))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionShow(authService, logg))
			r.Post("/edit-mode", controllers.SessionEditMode(authService, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", controllers.ContentTypes(registry, logg))
			r.Route("/{contentType}", func(r chi.Router) {
				r.Get("/", controllers.ContentList(registry, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEditMode(sessionMgr, logg))
					r.Post("/", controllers.ContentCreate(registry, logg))
					r.Patch("/{id}", controllers.ContentUpdate(registry, logg))
					r.Delete("/{id}", controllers.ContentDelete(registry, logg))
					r.Put("/order", controllers.ContentOrder(registry, logg))
					r.Post("/reorder", controllers.ContentReorder(registry, logg))
				})
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/url/*", controllers.MediaResolveURL(mediaService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEditMode(sessionMgr, logg))
				r.Post("/", controllers.MediaUpload(mediaService, logg))
				r.Delete("/*", controllers.MediaDelete(mediaService, logg))
			})
		})
	})

	return r
}
