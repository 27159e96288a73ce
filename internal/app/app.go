package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/api"
	"careconnect_web/internal/config"
	"careconnect_web/internal/handlers"
	"careconnect_web/internal/logger"
	"careconnect_web/internal/middleware"
	"careconnect_web/internal/routes"
	"careconnect_web/internal/session"
	"careconnect_web/internal/views"
	"careconnect_web/internal/workers"
)

const sessionPurgeInterval = 15 * time.Minute

// Deps are the collaborators NewRouter needs besides the config.
type Deps struct {
	API   api.Service
	Store session.Store
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open session store", "store", cfg.Session.Store, "error", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Info("Session store ready", "store", cfg.Session.Store)

	// Redis expires keys itself.
	if purger, ok := store.(session.Purger); ok {
		workers.NewSessionWorker(purger, sessionPurgeInterval).Start(ctx)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.APITimeout())
	logger.Info("API client configured", "base_url", cfg.API.BaseURL)

	router, err := NewRouter(cfg, Deps{API: client, Store: store})
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// NewRouter builds the gin engine with the middleware chain, templates and routes.
func NewRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	renderer, err := views.New(cfg.Render.Pretty)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	sessions := session.NewManager(deps.Store, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.SessionTTL(),
		Secure:     cfg.Session.Secure,
	})

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if cfg.Server.Compression {
		router.Use(middleware.Compression())
	}
	router.Use(middleware.SessionMiddleware(sessions))
	router.Use(middleware.SubmitOnce())

	appHandlers := handlers.NewAppHandlers(deps.API, sessions, cfg.App.Name, cfg.App.Tagline)
	routes.RegisterRoutes(router, appHandlers)

	return router, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Store {
	case "sqlite":
		return session.OpenSQLite(cfg.Session.SQLitePath)
	case "redis":
		client, err := session.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Second)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	default:
		return session.NewMemoryStore(), nil
	}
}
