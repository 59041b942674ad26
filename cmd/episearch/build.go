package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/config"
	"github.com/kailas-cloud/episearch/internal/db/objectstore"
	dbValkey "github.com/kailas-cloud/episearch/internal/db/valkey"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
	"github.com/kailas-cloud/episearch/internal/metrics"
	artifactrepo "github.com/kailas-cloud/episearch/internal/repository/artifact"
	"github.com/kailas-cloud/episearch/internal/repository/episodes"
	builduc "github.com/kailas-cloud/episearch/internal/usecase/build"
	"github.com/kailas-cloud/episearch/internal/usecase/index"
)

func runBuild(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.StringVar(&cfg.Source.Path, "in", cfg.Source.Path, "episode metadata export (JSON array)")
	fs.StringVar(&cfg.Output.Path, "out", cfg.Output.Path, "artifact path")
	fs.IntVar(&cfg.Build.Workers, "workers", cfg.Build.Workers, "parallel index workers")
	fs.BoolVar(&cfg.Output.Gzip, "gzip", cfg.Output.Gzip, "also write <out>.gz")
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck // flag already reports the problem
	}
	cfg.ApplyDefaults() // -workers 0 means NumCPU
	if err := cfg.Validate(); err != nil {
		return err //nolint:wrapcheck // validation errors are self-describing
	}

	logger := logpkg.FromContext(ctx)

	var store *objectstore.Store
	if cfg.UsesObjectStore() {
		s, err := newObjectStore(cfg)
		if err != nil {
			return err
		}
		store = s
	}

	var source builduc.Source = episodes.NewFile(cfg.Source.Path)
	if cfg.Source.Object != "" {
		source = episodes.NewObject(store, cfg.Source.Object)
	}

	var publishers []builduc.Sink
	if cfg.Output.Object != "" {
		publishers = append(publishers, artifactrepo.NewObject(store, cfg.Output.Object))
	}
	if cfg.Output.ValkeyKey != "" {
		kv, err := connectValkey(ctx, cfg)
		if err != nil {
			return err
		}
		defer kv.Close()
		publishers = append(publishers, artifactrepo.NewValkey(kv, cfg.Output.ValkeyKey))
	}

	reg := prometheus.NewRegistry()
	buildMetrics := metrics.NewBuild(reg)

	svc := builduc.New(source, index.New(cfg.Build.Workers), artifactrepo.NewFile(cfg.Output.Path, cfg.Output.Gzip)).
		WithPublishers(publishers...).
		WithRecorder(buildMetrics)

	report, runErr := svc.Run(ctx)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			logger.Warn("Failed to write metrics textfile", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr //nolint:wrapcheck // service errors carry their own context
	}

	logger.Info("Artifact written",
		zap.String("path", cfg.Output.Path),
		zap.String("size", fmt.Sprintf("%.1f KB", report.SizeKB())),
		zap.Int("episodes", report.Episodes),
		zap.Int("tokens", report.Tokens),
	)
	return nil
}

func newObjectStore(cfg *config.Config) (*objectstore.Store, error) {
	s, err := objectstore.NewStore(objectstore.Config{
		Endpoint:  cfg.ObjectStore.Endpoint,
		AccessKey: cfg.ObjectStore.AccessKey,
		SecretKey: cfg.ObjectStore.SecretKey,
		Bucket:    cfg.ObjectStore.Bucket,
		UseSSL:    cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}
	return s, nil
}

func connectValkey(ctx context.Context, cfg *config.Config) (*dbValkey.Store, error) {
	kv, err := dbValkey.NewStore(dbValkey.Config{
		Addrs:    cfg.Valkey.Addrs,
		Password: cfg.Valkey.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey: %w", err)
	}
	if err := kv.WaitForReady(ctx, time.Duration(cfg.Valkey.ReadinessTimeout)*time.Second); err != nil {
		kv.Close()
		return nil, fmt.Errorf("valkey not ready: %w", err)
	}
	logpkg.FromContext(ctx).Info("Connected to valkey", zap.Strings("addrs", cfg.Valkey.Addrs))
	return kv, nil
}
