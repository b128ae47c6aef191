package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/katalvlaran/stepwise/apikey"
	"github.com/katalvlaran/stepwise/catalog"
	"github.com/katalvlaran/stepwise/config"
	"github.com/katalvlaran/stepwise/httpapi"
	"github.com/katalvlaran/stepwise/kvstore"
	"github.com/katalvlaran/stepwise/ratelimit"
	"github.com/katalvlaran/stepwise/replay"
)

// run serves until ctx is cancelled, then shuts the listener down within
// cfg.ShutdownTimeout.
func run(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}

	handler, cleanup, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// build wires store, quota, credential, catalog, controller and HTTP
// adapter. cleanup releases them in reverse order.
func build(cfg config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	limiter, err := ratelimit.New(store, ratelimit.WithCaps(cfg.RatePerMinute, cfg.RatePerDay))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	logger.Info("catalog loaded", "scenarios", cat.Len(), "path", cfg.CatalogPath, "git_commands", cfg.GitCommandsPath)

	ctrl, err := replay.New(
		replay.WithBaseFrameDuration(cfg.BaseFrameDuration),
		replay.WithSpeedBounds(cfg.MinSpeed, cfg.MaxSpeed, cfg.DefaultSpeed),
		replay.WithScheduler(replay.WallClock{}),
		replay.WithLogger(logger.With("component", "replay")),
	)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	srv, err := httpapi.New(ctrl, cat,
		httpapi.WithLogger(logger.With("component", "http")),
		httpapi.WithLimiter(limiter),
		httpapi.WithKeeper(apikey.New(store)),
	)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		srv.Close()
		ctrl.Close()
		if err := store.Close(); err != nil {
			logger.Warn("close store", "err", err)
		}
	}

	return srv.Handler(), cleanup, nil
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func openStore(cfg config.Config) (kvstore.Store, error) {
	if cfg.StorePath == "" {
		return kvstore.NewMemory(), nil
	}
	return kvstore.OpenSQLite(cfg.StorePath)
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogPath == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(cfg.CatalogPath)
	}
	if err != nil || cfg.GitCommandsPath == "" {
		return cat, err
	}

	return cat.LoadCommands(cfg.GitCommandsPath)
}
