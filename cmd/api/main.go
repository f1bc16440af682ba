package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/baharkarakas/bloglist-backend/internal/api"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/config"
	"github.com/baharkarakas/bloglist-backend/internal/db"
	"github.com/baharkarakas/bloglist-backend/internal/logger"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/repository"
	"github.com/baharkarakas/bloglist-backend/internal/repository/cache"
	"github.com/baharkarakas/bloglist-backend/internal/repository/postgres"
	"github.com/baharkarakas/bloglist-backend/internal/repository/sqlite"
	"github.com/baharkarakas/bloglist-backend/internal/services"
	"github.com/baharkarakas/bloglist-backend/internal/worker"
)

type stores struct {
	users repository.Users
	blogs repository.Blogs
	close func()
}

func main() {
	cfgPath := pflag.String("config", "", "path to a YAML config file")
	migrate := pflag.Bool("migrate", false, "apply database migrations on start")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *migrate {
		cfg.Migrate = true
	}

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Error("store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer st.close()

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			// cache opsiyonel, redis yoksa direkt store
			log.Warn("redis unavailable, blog cache disabled", "addr", cfg.RedisAddr, "err", err)
		} else {
			defer rdb.Close()
			st.blogs = cache.NewBlogs(st.blogs, rdb, cfg.CacheTTL, log)
			log.Info("blog cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}
	}

	wp := worker.NewPool(cfg.HashWorkers)
	defer wp.Stop()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost, wp)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		UserSvc:        services.NewUserService(st.users, st.blogs, hasher),
		AuthSvc:        services.NewAuthService(st.users, hasher, tm),
		BlogSvc:        services.NewBlogService(st.blogs),
		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, db.SQLDB(pool), "postgres"); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		repos := postgres.NewRepositories(pool)
		return &stores{users: repos.Users, blogs: repos.Blogs, close: pool.Close}, nil

	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		// tek dosya, migration her zaman
		if err := db.RunMigrations(ctx, sqlDB, "sqlite"); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		repos := sqlite.NewRepositories(sqlDB)
		return &stores{users: repos.Users, blogs: repos.Blogs, close: func() { _ = sqlDB.Close() }}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
