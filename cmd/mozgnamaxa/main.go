package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/projecteax/mozgnamaxa/internal/core/catalogue"
	corecfg "github.com/projecteax/mozgnamaxa/internal/core/config"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/projecteax/mozgnamaxa/internal/core/storage/memory"
	"github.com/projecteax/mozgnamaxa/internal/core/storage/postgres"
	"github.com/projecteax/mozgnamaxa/internal/core/storage/sqlite"
	"github.com/projecteax/mozgnamaxa/internal/history"
	"github.com/projecteax/mozgnamaxa/internal/identity"
	"github.com/projecteax/mozgnamaxa/internal/migrations"
	"github.com/projecteax/mozgnamaxa/internal/notify"
	"github.com/projecteax/mozgnamaxa/internal/projection"
	"github.com/projecteax/mozgnamaxa/internal/reconcile"
	"github.com/projecteax/mozgnamaxa/internal/recording"
	"github.com/projecteax/mozgnamaxa/internal/server"
)

func main() {
	configPath := flag.String("config", "mozgnamaxa.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "database", cfg.Database.Type, "notify", cfg.Notify.Type, "audit", cfg.Audit.Enabled)

	// 2. Load Game Catalogue
	cat, err := catalogue.Load(cfg.Catalogue.Path)
	if err != nil {
		slog.Error("Failed to load game catalogue", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded game catalogue",
		"path", cfg.Catalogue.Path,
		"seasons", cat.Seasons,
		"games_per_season", cat.GamesPerSeason,
		"listed_games", cat.GameCount(),
		"fingerprint", cat.Fingerprint,
	)

	// 3. Initialize Storage (+ migrations)
	store, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize completion store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// 4. Initialize Invalidation Bus
	bus, err := openBus(cfg.Notify)
	if err != nil {
		slog.Error("Failed to initialize invalidation bus", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Initialize History Cache
	cache := history.NewCache(store, history.Options{
		Debounce:     cfg.History.DebounceDuration(),
		SettleDelay:  cfg.History.SettleDelayDuration(),
		FetchTimeout: cfg.History.FetchTimeoutDuration(),
		Capacity:     cfg.History.Capacity,
	})
	defer cache.Close()
	if err := cache.Listen(ctx, bus); err != nil {
		slog.Error("Failed to subscribe history cache", "error", err)
		os.Exit(1)
	}

	// 6. Initialize Services
	ident := identity.ContextProvider{}
	recorder := recording.NewService(store, cat, ident, bus, cfg.Server.MaxBodySizeMB)
	progress := projection.NewService(store, cat.Thresholds(), ident)
	auditor := reconcile.NewAuditor(store, reconcile.Options{
		Interval:    cfg.Audit.IntervalDuration(),
		BatchSize:   cfg.Audit.BatchSize,
		WorkerCount: cfg.Audit.WorkerCount,
	})

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode,
		identity.Middleware(cfg.Server.IdentityHeader))
	recorder.RegisterRoutes(srv.Engine)
	history.NewHandler(cache, ident).RegisterRoutes(srv.Engine)
	progress.RegisterRoutes(srv.Engine)
	auditor.RegisterRoutes(srv.Engine)

	// 8. Start Services
	if cfg.Audit.Enabled {
		go func() {
			if err := auditor.Start(ctx); err != nil {
				slog.Error("Auditor stopped with error", "error", err)
			}
		}()
	} else {
		slog.Info("Drift auditor disabled by config")
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func openStore(cfg corecfg.DatabaseConfig) (storage.CompletionStore, error) {
	switch cfg.Type {
	case "postgres":
		adapter, err := postgres.NewAdapter(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(adapter.DB(), migrations.DialectPostgres, cfg.AutoMigrate); err != nil {
			adapter.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		if err := adapter.Prepare(); err != nil {
			adapter.Close()
			return nil, err
		}
		return postgres.NewStore(adapter), nil

	case "sqlite":
		store, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(store.DB(), migrations.DialectSQLite, cfg.AutoMigrate); err != nil {
			store.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return store, nil

	case "memory":
		slog.Warn("Using in-memory completion store; progress is lost on restart")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

func openBus(cfg corecfg.NotifyConfig) (notify.Bus, error) {
	if cfg.Type == "redis" {
		return notify.NewRedis(cfg.RedisAddr, cfg.Channel)
	}
	return notify.NewLocal(), nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
