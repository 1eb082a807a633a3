package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actuallystonmai/cineai/internal/config"
	"github.com/actuallystonmai/cineai/internal/engine"
	"github.com/actuallystonmai/cineai/internal/handler"
	"github.com/actuallystonmai/cineai/internal/ratelimit"
	"github.com/actuallystonmai/cineai/internal/router"
	"github.com/actuallystonmai/cineai/internal/service"
	"github.com/actuallystonmai/cineai/internal/view"
	"github.com/actuallystonmai/cineai/seeds"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "", "path to env file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// ------------ Recommendation source ---------------
	var source service.Source
	switch cfg.Source {
	case config.SourceMock:
		source = seeds.NewCatalog(logger)
		logger.Info("serving static mock recommendations")
	default:
		source = engine.NewClient(cfg.EngineURL, cfg.EngineTimeout, logger)
		logger.Info("relaying to recommendation engine", slog.String("url", cfg.EngineURL))
	}

	renderer, err := view.NewRenderer(view.Scale(cfg.StarScale))
	if err != nil {
		return err
	}

	svc := service.NewService(source, validator.New(), logger)
	h := handler.NewHandler(svc, renderer, logger)

	// ------------ Redis / rate limiting ---------------
	opts := router.Options{Logger: logger}
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()

		// Fixed windows: only the burst applies here, RPS is ignored.
		limiter := ratelimit.NewRedisLimiter(client, cfg.RateLimit.Burst)
		opts.Pinger = limiter
		if cfg.RateLimit.Enabled {
			opts.Limiter = limiter
		}
		logger.Info("redis configured", slog.String("addr", redisOpts.Addr))
	} else if cfg.RateLimit.Enabled {
		opts.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	switch {
	case opts.Limiter == nil:
	case cfg.RedisURL != "":
		logger.Info("rate limiting enabled",
			slog.String("store", "redis"),
			slog.Int("per_second", cfg.RateLimit.Burst))
	default:
		logger.Info("rate limiting enabled",
			slog.String("store", "memory"),
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst))
	}

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(h, opts),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("server running", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
