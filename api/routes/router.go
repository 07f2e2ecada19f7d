package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plaindes/cms-backend/api/controllers"
	"github.com/plaindes/cms-backend/api/middleware"
	"github.com/plaindes/cms-backend/internal/auth"
	"github.com/plaindes/cms-backend/internal/contact"
	"github.com/plaindes/cms-backend/internal/contents"
	"github.com/plaindes/cms-backend/internal/dashboard"
	"github.com/plaindes/cms-backend/internal/landing"
	"github.com/plaindes/cms-backend/internal/media"
	"github.com/plaindes/cms-backend/internal/menus"
	"github.com/plaindes/cms-backend/internal/pages"
	"github.com/plaindes/cms-backend/internal/sections"
	"github.com/plaindes/cms-backend/internal/settings"
	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db"
	"github.com/plaindes/cms-backend/pkg/logger"
	"github.com/plaindes/cms-backend/pkg/metrics"
	"github.com/plaindes/cms-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      auth.Service
	Register  auth.RegisterService
	Landing   landing.Service
	Pages     pages.Service
	Sections  sections.Service
	Contents  contents.Service
	Menus     menus.Service
	Media     media.Service
	Contact   contact.Service
	Settings  settings.Service
	Dashboard dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Serve uploaded files directly when the public base URL is a local path.
	if strings.HasPrefix(cfg.Media.PublicBaseURL, "/") {
		prefix := strings.TrimSuffix(cfg.Media.PublicBaseURL, "/")
		fileServer := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.Media.UploadDir)))
		r.Method(http.MethodGet, prefix+"/*", fileServer)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.AuthRegister(svcs.Register, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(svcs.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
			r.Get("/me", controllers.AuthMe(logg))
		})
	})

	// Public site surface: no auth required, but a presented token still
	// identifies the caller for logging.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(svcs.Auth, logg))
		r.Get("/landing", controllers.Landing(svcs.Landing, logg))
		r.Get("/pages/{slug}", controllers.PublicPage(svcs.Landing, logg))
		r.Post("/contact", controllers.ContactSubmit(svcs.Contact, logg))
	})

	// Admin surface: authenticated admin accounts only.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(svcs.Auth, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/dashboard", controllers.DashboardStats(svcs.Dashboard, logg))

		r.Route("/pages", func(r chi.Router) {
			r.Post("/", controllers.PageCreate(svcs.Pages, logg))
			r.Get("/", controllers.PageList(svcs.Pages, logg))
			r.Get("/{id}", controllers.PageGet(svcs.Pages, logg))
			r.Patch("/{id}", controllers.PageUpdate(svcs.Pages, logg))
			r.Delete("/{id}", controllers.PageDelete(svcs.Pages, logg))
		})

		r.Route("/sections", func(r chi.Router) {
			r.Post("/", controllers.SectionCreate(svcs.Sections, logg))
			r.Get("/", controllers.SectionListByPage(svcs.Sections, logg))
			r.Get("/{id}", controllers.SectionGet(svcs.Sections, logg))
			r.Patch("/{id}", controllers.SectionUpdate(svcs.Sections, logg))
			r.Delete("/{id}", controllers.SectionDelete(svcs.Sections, logg))
			r.Post("/{id}/contents", controllers.SectionAttachContent(svcs.Sections, logg))
			r.Delete("/{id}/contents/{contentID}", controllers.SectionDetachContent(svcs.Sections, logg))
			r.Put("/{id}/contents/order", controllers.SectionReorderContents(svcs.Sections, logg))
		})

		r.Route("/contents", func(r chi.Router) {
			r.Post("/", controllers.ContentCreate(svcs.Contents, logg))
			r.Get("/", controllers.ContentList(svcs.Contents, logg))
			r.Get("/{id}", controllers.ContentGet(svcs.Contents, logg))
			r.Patch("/{id}", controllers.ContentUpdate(svcs.Contents, logg))
			r.Delete("/{id}", controllers.ContentDelete(svcs.Contents, logg))
		})

		r.Route("/menus", func(r chi.Router) {
			r.Post("/", controllers.MenuCreate(svcs.Menus, logg))
			r.Get("/", controllers.MenuList(svcs.Menus, logg))
			r.Get("/{id}", controllers.MenuGet(svcs.Menus, logg))
			r.Patch("/{id}", controllers.MenuUpdate(svcs.Menus, logg))
			r.Delete("/{id}", controllers.MenuDelete(svcs.Menus, logg))
			r.Post("/{id}/items", controllers.MenuItemCreate(svcs.Menus, logg))
			r.Patch("/items/{itemID}", controllers.MenuItemUpdate(svcs.Menus, logg))
			r.Delete("/items/{itemID}", controllers.MenuItemDelete(svcs.Menus, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Post("/", controllers.MediaUpload(svcs.Media, cfg.Media, logg))
			r.Get("/", controllers.MediaList(svcs.Media, logg))
			r.Get("/{id}", controllers.MediaGet(svcs.Media, logg))
			r.Patch("/{id}", controllers.MediaUpdate(svcs.Media, logg))
			r.Delete("/{id}", controllers.MediaDelete(svcs.Media, logg))
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", controllers.ContactList(svcs.Contact, logg))
			r.Get("/{id}", controllers.ContactGet(svcs.Contact, logg))
			r.Post("/{id}/read", controllers.ContactMarkRead(svcs.Contact, logg))
			r.Post("/{id}/replied", controllers.ContactMarkReplied(svcs.Contact, logg))
			r.Delete("/{id}", controllers.ContactDelete(svcs.Contact, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(svcs.Settings, logg))
			r.Put("/", controllers.SettingsUpdate(svcs.Settings, logg))
		})
	})

	return r
}
