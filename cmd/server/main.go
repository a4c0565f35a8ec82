package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/dinnerbracket/internal/config"
	"github.com/playperu/dinnerbracket/internal/database"
	"github.com/playperu/dinnerbracket/internal/migrations"
	"github.com/playperu/dinnerbracket/internal/server"
	"github.com/playperu/dinnerbracket/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	catalog := server.NewSQLiteCatalog(db)
	if cfg.SeedCatalog {
		if err := server.SeedCatalog(ctx, logger, catalog); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	checks := map[string]server.Checker{
		"sqlite": database.Checker{DB: db},
	}

	g, gctx := errgroup.WithContext(ctx)

	// --- Sessions ---
	var sessions session.Store
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		store := session.NewRedisStore(rdb, cfg.SessionTTL)
		sessions = store
		checks["redis"] = store
	} else {
		store := session.NewMemoryStore(cfg.SessionTTL)
		sessions = store
		logger.Info("using in-memory sessions", "ttl", cfg.SessionTTL.String())

		g.Go(func() error {
			sweepSessions(gctx, logger, store)
			return nil
		})
	}

	if cfg.AdminKeyHash == "" {
		logger.Warn("ADMIN_KEY_HASH not set, admin routes disabled")
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Catalog:      catalog,
		Sessions:     sessions,
		Broker:       server.NewBroker(),
		Checks:       checks,
		AdminKeyHash: cfg.AdminKeyHash,
		SPADir:       cfg.SPADir,
	})

	// --- Run ---
	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// sweepSessions drops expired in-memory tournaments until ctx is done.
func sweepSessions(ctx context.Context, logger *slog.Logger, store *session.MemoryStore) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug("swept expired sessions", "count", n)
			}
		}
	}
}
