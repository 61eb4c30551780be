package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/config"
	"github.com/qiushui/site-core/internal/database"
	"github.com/qiushui/site-core/internal/middleware"
	"github.com/qiushui/site-core/internal/modules/content"
	"github.com/qiushui/site-core/internal/modules/views"
	pkgredis "github.com/qiushui/site-core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg        *config.AppConfig
	router     *gin.Engine
	db         *gorm.DB
	rc         *pkgredis.Client
	repo       *content.Repository
	viewSvc    *views.Service
	logger     *zap.Logger
	cancel     context.CancelFunc
	closeStore func()
}

// New initializes the application: config → DB → Redis → view store → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyTimezone(cfg.Timezone); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, logger: logger, closeStore: func() {}}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if cfg.Database.Enable {
		db, err := database.Connect(cfg)
		if err != nil {
			a.Shutdown()
			return nil, fmt.Errorf("database: %w", err)
		}
		a.db = db
	}

	if cfg.Redis.Enable {
		rc, err := pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			a.Shutdown()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.rc = rc
	}

	deps := views.Deps{DB: a.db}
	if a.rc != nil {
		deps.Redis = a.rc.Raw()
	}
	store, closeStore, err := views.OpenStore(ctx, cfg, deps)
	if err != nil {
		a.Shutdown()
		return nil, fmt.Errorf("views store: %w", err)
	}
	a.closeStore = closeStore
	a.viewSvc = views.NewService(store, logger.Named("views"))

	a.repo = content.NewRepository(content.Options{
		Root:          cfg.ContentRoot(),
		Extension:     cfg.Content.Extension,
		DefaultAuthor: cfg.Content.DefaultAuthor,
		Views:         a.viewSvc,
		Logger:        logger.Named("content"),
		Revalidate:    cfg.Content.Revalidate,
	})
	if cfg.Content.Watch && cfg.Content.Revalidate > 0 {
		go func() {
			if err := a.repo.Watch(ctx); err != nil {
				logger.Warn("content watcher stopped", zap.Error(err))
			}
		}()
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	a.router = gin.New()
	a.router.HandleMethodNotAllowed = true
	a.router.Use(gin.Recovery())
	a.router.Use(middleware.Logger(logger, "/metrics", apiPrefix+"/health"))
	a.router.Use(cors.New(corsConfig(cfg.AllowedOrigins, cfg.IsDev())))

	a.registerRoutes()

	logger.Info("app initialized",
		zap.String("env", cfg.Env),
		zap.String("content_root", a.repo.Root()),
		zap.String("views_backend", a.viewSvc.Backend()),
		zap.Bool("database", a.db != nil),
		zap.Bool("redis", a.rc != nil),
	)
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines and releases connections.
func (a *App) Shutdown() {
	a.cancel()
	a.closeStore()
	if a.rc != nil {
		if err := a.rc.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("database close failed", zap.Error(err))
		}
	}
}
