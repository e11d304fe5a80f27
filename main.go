package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	goredis "github.com/redis/go-redis/v9"

	"github.com/boutiqo/server/internal/analytics"
	"github.com/boutiqo/server/internal/assistant"
	"github.com/boutiqo/server/internal/assistant/session"
	"github.com/boutiqo/server/internal/assistant/tools"
	"github.com/boutiqo/server/internal/core"
	"github.com/boutiqo/server/internal/gateway"
	"github.com/boutiqo/server/internal/server"
	logx "github.com/boutiqo/server/pkg/logger"
	pkgredis "github.com/boutiqo/server/pkg/redis"
	pkgsupabase "github.com/boutiqo/server/pkg/supabase"
)

// AppConfig defines all configurable parameters of the service, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Supabase pkgsupabase.Config
	Redis    pkgredis.Config
	HTTP     server.Config

	// Assistant
	Assistant assistant.Config
	Session   session.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.EnvironmentFromOS()})

	sb, err := cfg.Supabase.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Supabase client")
	}
	store := gateway.NewClient(sb)

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
	}

	cache, err := session.NewCache(cfg.Session, redisOrNil(rdb))
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise session cache")
	}
	sessions := session.NewStore(store, cache, cfg.Assistant.HistoryDepth)

	registry, err := tools.NewRegistry(ctx, tools.Deps{
		Store:     store,
		Analytics: analytics.NewService(store),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build tool registry")
	}

	chatModel, err := assistant.NewChatModel(ctx, cfg.Assistant.Model)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise chat model")
	}

	svc, err := assistant.NewService(cfg.Assistant, chatModel, store, sessions, registry)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build assistant service")
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.New(svc).Handler(),
	}

	go func() {
		logx.Info().Str("addr", cfg.HTTP.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// redisOrNil avoids handing a typed nil *redis.Client to the cache factory.
func redisOrNil(rdb *goredis.Client) goredis.Cmdable {
	if rdb == nil {
		return nil
	}
	return rdb
}
