package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/vimldn/vimnyc8/internal/adapter/httpapi"
	"github.com/vimldn/vimnyc8/internal/aggregate"
	"github.com/vimldn/vimnyc8/internal/config"
	"github.com/vimldn/vimnyc8/internal/observability"
	"github.com/vimldn/vimnyc8/internal/review"
	"github.com/vimldn/vimnyc8/internal/socrata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := socrata.NewClient(cfg.SocrataBaseURL, cfg.SocrataAppToken, cfg.SourceTimeout, logger, metrics)
	svc := aggregate.NewService(client, clock, logger, metrics, cfg.PortfolioTimeout)

	reviews, err := review.Open(cfg.ReviewsDBPath, clock)
	if err != nil {
		logger.Error("failed to open review store", "path", cfg.ReviewsDBPath, "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.Addr, svc, reviews, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reviews.Close(); err != nil {
		logger.Error("review store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
