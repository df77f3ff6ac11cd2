package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/webpproxy/internal/api"
	"github.com/youruser/webpproxy/internal/config"
	imagepkg "github.com/youruser/webpproxy/internal/image"
	"github.com/youruser/webpproxy/internal/logging"
	"github.com/youruser/webpproxy/internal/metrics"
	"github.com/youruser/webpproxy/internal/pipeline"
	"github.com/youruser/webpproxy/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	// The codec must be usable before the listener accepts anything.
	transcoder := imagepkg.NewTranscoder()
	if err := transcoder.Warmup(); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	m := metrics.New()
	fetcher := imagepkg.NewFetcher(util.NewClient(cfg.FetchTimeout), cfg.MaxImageBytes)
	p := pipeline.New(fetcher, transcoder, m, logger)
	r := api.NewRouter(api.NewHandler(p, m, logger))

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", "http://localhost"+cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
