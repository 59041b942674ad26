package main

import (
	"context"
	"flag"

	"github.com/kailas-cloud/episearch/internal/config"
	"github.com/kailas-cloud/episearch/internal/repository/episodes"
	tagsuc "github.com/kailas-cloud/episearch/internal/usecase/tags"
)

func runTags(ctx context.Context, cfg *config.Config, args []string) error {
	var apply bool

	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.StringVar(&cfg.Tags.Input, "in", cfg.Tags.Input, "episode export to clean")
	fs.StringVar(&cfg.Tags.Output, "out", cfg.Tags.Output, "where -apply writes the cleaned export")
	fs.IntVar(&cfg.Tags.MinOccurrences, "min", cfg.Tags.MinOccurrences, "minimum occurrences for a tag to be kept")
	fs.BoolVar(&apply, "apply", false, "write changes (default is a dry run)")
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck // flag already reports the problem
	}
	cfg.ApplyDefaults() // -min 0 falls back to the default
	if err := cfg.Validate(); err != nil {
		return err //nolint:wrapcheck // validation errors are self-describing
	}

	svc := tagsuc.New(
		episodes.NewFile(cfg.Tags.Input),
		tagsuc.NewNormalizer(cfg.Tags.MaxLength),
		episodes.SaveRaw,
		cfg.Tags.Output,
	).WithMinOccurrences(cfg.Tags.MinOccurrences)

	_, err := svc.Run(ctx, apply)
	return err //nolint:wrapcheck // service errors carry their own context
}
