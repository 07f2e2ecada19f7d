package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/plaindes/cms-backend/api/routes"
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
	"github.com/plaindes/cms-backend/internal/users"
	"github.com/plaindes/cms-backend/pkg/config"
	"github.com/plaindes/cms-backend/pkg/db"
	"github.com/plaindes/cms-backend/pkg/logger"
	"github.com/plaindes/cms-backend/pkg/metrics"
	"github.com/plaindes/cms-backend/pkg/migrate"
	"github.com/plaindes/cms-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svcs, err := buildServices(cfg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	// One-off hygiene pass: sessions are otherwise only reaped lazily when
	// their token is next presented.
	sessionsRepo := auth.NewSessionRepository(dbClient.DB())
	if purged, err := sessionsRepo.DeleteExpired(context.Background(), time.Now().UTC()); err != nil {
		logg.Warn(logg.WithField(context.Background(), "error", err.Error()), "failed to purge expired sessions")
	} else if purged > 0 {
		logg.Info(logg.WithField(context.Background(), "purged", purged), "purged expired sessions")
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, registry, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
	}
}

func buildServices(cfg *config.Config, dbClient *db.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	usersRepo := users.NewRepository(gormDB)
	sessionsRepo := auth.NewSessionRepository(gormDB)
	pagesRepo := pages.NewRepository(gormDB)
	sectionsRepo := sections.NewRepository(gormDB)
	contentsRepo := contents.NewRepository(gormDB)
	menusRepo := menus.NewRepository(gormDB)
	mediaRepo := media.NewRepository(gormDB)
	contactRepo := contact.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:    usersRepo,
		SessionRepo: sessionsRepo,
		JWTConfig:   cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, err
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	pagesService, err := pages.NewService(pagesRepo)
	if err != nil {
		return routes.Services{}, err
	}

	contentsService, err := contents.NewService(contentsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	sectionsService, err := sections.NewService(sectionsRepo, pagesRepo, contentsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	menusService, err := menus.NewService(menusRepo)
	if err != nil {
		return routes.Services{}, err
	}

	storage, err := media.NewLocalStorage(cfg.Media.UploadDir, cfg.Media.PublicBaseURL)
	if err != nil {
		return routes.Services{}, err
	}

	mediaService, err := media.NewService(mediaRepo, storage, cfg.Media)
	if err != nil {
		return routes.Services{}, err
	}

	contactService, err := contact.NewService(contactRepo)
	if err != nil {
		return routes.Services{}, err
	}

	settingsService, err := settings.NewService(settingsRepo, mediaRepo, cfg.Site.DefaultKey)
	if err != nil {
		return routes.Services{}, err
	}

	landingService, err := landing.NewService(pagesRepo, sectionsRepo, menusRepo, settingsService)
	if err != nil {
		return routes.Services{}, err
	}

	dashboardService, err := dashboard.NewService(pagesRepo, contentsRepo, contactRepo, mediaRepo, usersRepo)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:      authService,
		Register:  registerService,
		Landing:   landingService,
		Pages:     pagesService,
		Sections:  sectionsService,
		Contents:  contentsService,
		Menus:     menusService,
		Media:     mediaService,
		Contact:   contactService,
		Settings:  settingsService,
		Dashboard: dashboardService,
	}, nil
}
