package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/config"
	dbValkey "github.com/kailas-cloud/episearch/internal/db/valkey"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
	"github.com/kailas-cloud/episearch/internal/metrics"
	artifactrepo "github.com/kailas-cloud/episearch/internal/repository/artifact"
	chiTransport "github.com/kailas-cloud/episearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/episearch/internal/usecase/health"
)

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	addr := ""

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Output.Path, "artifact", cfg.Output.Path, "artifact to serve")
	fs.StringVar(&addr, "addr", "", "listen address (default :<http.port>)")
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck // flag already reports the problem
	}
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.HTTP.Port)
	}

	logger := logpkg.FromContext(ctx)

	art := artifactrepo.NewFile(cfg.Output.Path, false)
	healthSvc := healthuc.New(art)

	if cfg.Output.ValkeyKey != "" {
		kv, err := dbValkey.NewStore(dbValkey.Config{Addrs: cfg.Valkey.Addrs, Password: cfg.Valkey.Password})
		if err != nil {
			logger.Warn("Valkey unavailable, skipping its health check", zap.Error(err))
		} else {
			defer kv.Close()
			healthSvc.WithPinger("valkey", kv)
		}
	}
	if cfg.UsesObjectStore() {
		store, err := newObjectStore(cfg)
		if err != nil {
			return err
		}
		healthSvc.WithPinger("object_store", store)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := chiTransport.NewServer(art, healthSvc, reg, logger)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(metrics.NewHTTP(reg), cfg.HTTP.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr), zap.String("artifact", cfg.Output.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
