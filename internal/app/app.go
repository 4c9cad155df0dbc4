package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/internal/bookmarks"
	"blog-api/internal/catalog"
	"blog-api/internal/config"
	"blog-api/internal/httpserver"
	"blog-api/internal/httpserver/deps"
	"blog-api/internal/httpserver/mw"
	"blog-api/internal/kvstore"
	"blog-api/internal/logger"
	"blog-api/internal/redis"
	"blog-api/internal/scheduler"
	"blog-api/internal/version"
	"blog-api/internal/views"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    kvstore.Store
	catalog  *catalog.Catalog
	reloader *scheduler.CatalogReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := openStore(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.Backend(), err)
		os.Exit(1)
	}

	cat := catalog.New(cfg.ContentDir)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cat,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	guard := mw.NewGuard(cfg.AdminUsername, cfg.AdminPassword, cfg.DevMode)
	if !cfg.HasAdminCredentials() {
		if cfg.DevMode {
			loggerClient.Warn("no admin credentials configured, admin endpoints open (dev mode)")
		} else {
			loggerClient.Warn("no admin credentials configured, admin endpoints disabled")
		}
	}

	limiter := mw.NewLimiter(mw.RateLimitConfig{
		MaxRequests: cfg.RateLimitMax,
		Window:      cfg.RateLimitWindow,
		TrustProxy:  cfg.TrustProxy,
	})

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		TrustProxy:    cfg.TrustProxy,
		DevMode:       cfg.DevMode,
		CORSOrigins:   cfg.CORSOrigins,
		Store:         store,
		Catalog:       cat,
		Views:         views.NewService(store, loggerClient),
		Analytics:     views.NewAnalytics(store, cat, loggerClient),
		Bookmarks:     bookmarks.NewService(store, loggerClient),
		Guard:         guard,
		Limiter:       limiter,
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		store:    store,
		catalog:  cat,
		reloader: reloader,
	}
}

// openStore builds the key-value backend the configuration selects: Redis
// with the retrying connector, or the local JSON file fallback.
func openStore(cfg *config.Config, loggerClient logger.Logger) (kvstore.Store, error) {
	switch cfg.Backend() {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			return nil, err
		}
		loggerClient.Info("Redis initialized successfully")
		return kvstore.NewRedisStore(client), nil
	default:
		loggerClient.Infof("Using local file store at %s", cfg.DataFile)
		return kvstore.NewFileStore(cfg.DataFile)
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting blog-api %s on %s (storage=%s)",
		version.Version, a.cfg.ListenPort, a.cfg.Backend())
	a.logger.Infof("blog-api %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads posts and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Int("posts", a.catalog.Count()))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close store: %v", err)
	} else {
		a.logger.Info("store closed cleanly")
	}

	a.logger.Info("blog-api stopped cleanly")
	return nil
}
