// Command episearch builds the static search index for the podcast episode catalog.
//
// Usage:
//
//	episearch [build] [-in episodes_final.json] [-out search-index.json] [-workers N] [-gzip]
//	episearch tags [-in episodes_batch.json] [-out episodes_batch_cleaned.json] [-min 2] [-apply]
//	episearch serve [-artifact search-index.json] [-addr :8080]
//	episearch version
//
// Settings come from config/<ENV>.yaml (ENV defaults to "local"); flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/config"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
	"github.com/kailas-cloud/episearch/internal/version"
)

type command func(ctx context.Context, cfg *config.Config, args []string) error

var commands = map[string]command{
	"build": runBuild,
	"tags":  runTags,
	"serve": runServe,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	name, rest := "build", args
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name, rest = args[0], args[1:]
	}

	if name == "version" {
		fmt.Println(version.String())
		return 0
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q (want build, tags, serve or version)\n", name)
		return 2
	}

	env := config.GetEnv()
	cfg, err := loadConfig(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config: "+err.Error())
		return 1
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger: "+err.Error())
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger.With(zap.String("command", name)))

	logger.Debug("Starting episearch",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("command", name),
	)

	if err := cmd(ctx, &cfg, rest); err != nil {
		logger.Error("Command failed", zap.String("command", name), zap.Error(err))
		return 1
	}
	return 0
}

// loadConfig reads config/<env>.yaml, falling back to defaults when no file exists.
func loadConfig(env string) (config.Config, error) {
	cfg, err := config.Load(env)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err //nolint:wrapcheck // Load names the file
}
