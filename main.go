package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/wardline/server/internal/api"
	"github.com/wardline/server/internal/core"
	"github.com/wardline/server/internal/db"
	"github.com/wardline/server/internal/intake/engine"
	"github.com/wardline/server/internal/intake/model"
	"github.com/wardline/server/internal/intake/repo"
	"github.com/wardline/server/internal/webhook"
	logx "github.com/wardline/server/pkg/logger"
	pkgredis "github.com/wardline/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`

	// Infrastructure
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Collaborators
	Webhook webhook.Config
	Session model.SessionConfig

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env; missing required variables abort here.
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env})

	sessions, closeSessions, err := buildSessionRepository(cfg.Session)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise session store")
	}
	defer closeSessions()

	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to open database")
	}
	defer dbConn.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		logx.Fatal().Err(err).Msg("failed to ping database")
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		logx.Fatal().Err(err).Msg("failed to run migrations")
	}
	logx.Info().Msg("database connected")

	eng, err := engine.New(engine.Config{
		Sessions: sessions,
		Store:    db.NewRepository(dbConn),
		Notifier: webhook.NewNotifier(cfg.Webhook),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build intake engine")
	}

	srv := api.NewServer(eng, strings.Split(cfg.CORSAllowedOrigins, ","))
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logx.Info().Str("addr", httpSrv.Addr).Str("env", env.String()).Msg("server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("forced shutdown")
	}
}

// buildSessionRepository selects the session backend. Redis is the default;
// the in-memory store exists for local runs without infrastructure.
func buildSessionRepository(cfg model.SessionConfig) (model.SessionRepository, func(), error) {
	if cfg.Backend == "memory" {
		logx.Warn().Msg("using in-memory session store, state will not survive restarts")
		return repo.NewMemorySessionRepository(), func() {}, nil
	}

	ttl, err := time.ParseDuration(cfg.TTL)
	if err != nil {
		return nil, nil, err
	}

	var redisCfg pkgredis.Config
	if err := envconfig.Process("redis", &redisCfg); err != nil {
		return nil, nil, err
	}
	rdb, err := redisCfg.New()
	if err != nil {
		return nil, nil, err
	}
	logx.Info().Dur("session_ttl", ttl).Msg("redis session store ready")
	return repo.NewRedisSessionRepository(rdb, ttl), func() { _ = rdb.Close() }, nil
}
