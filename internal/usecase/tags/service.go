package tags

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/domain/episode"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
)

// RawSource loads the export with every field preserved.
type RawSource interface {
	LoadRaw(ctx context.Context) ([]episode.Raw, error)
	Name() string
}

// Saver writes the cleaned export.
type Saver func(path string, rows []episode.Raw) error

// Service runs a tag cleanup over the export.
type Service struct {
	source         RawSource
	normalizer     *Normalizer
	save           Saver
	minOccurrences int
	output         string
}

// New creates a tag cleanup service writing to output when applied.
func New(source RawSource, normalizer *Normalizer, save Saver, output string) *Service {
	return &Service{
		source:         source,
		normalizer:     normalizer,
		save:           save,
		minOccurrences: 2,
		output:         output,
	}
}

// WithMinOccurrences sets how often a tag must appear to survive.
func (s *Service) WithMinOccurrences(n int) *Service {
	if n > 0 {
		s.minOccurrences = n
	}
	return s
}

// Run cleans the tags. Without apply it only reports what would change.
func (s *Service) Run(ctx context.Context, apply bool) (Report, error) {
	log := logpkg.FromContext(ctx)

	rows, err := s.source.LoadRaw(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load episodes: %w", err)
	}

	report := s.normalizer.Cleanup(rows, s.minOccurrences)
	logReport(log, s.source.Name(), report)

	if !apply {
		log.Info("Dry run, no changes saved", zap.String("apply_with", "-apply"))
		return report, nil
	}

	if err := s.save(s.output, rows); err != nil {
		return report, fmt.Errorf("save cleaned episodes: %w", err)
	}
	log.Info("Saved cleaned episodes", zap.String("path", s.output), zap.Int("episodes", len(rows)))
	return report, nil
}

func logReport(log *zap.Logger, source string, r Report) {
	log.Info("Tag frequency analyzed",
		zap.String("source", source),
		zap.Int("unique_tags", r.UniqueTags),
		zap.Int("kept", r.KeptTags),
		zap.Int("dropped", r.DroppedTags),
		zap.Int("min_occurrences", r.MinOccurrences),
		zap.Strings("dropped_sample", r.DroppedSample),
	)

	log.Info("Tag cleanup summary",
		zap.Int("episodes_modified", r.EpisodesModified),
		zap.Int("tags_before", r.TagsBefore),
		zap.Int("tags_after", r.TagsAfter),
		zap.Int("tags_removed", r.TagsRemoved),
		zap.Int("tags_consolidated", r.TagsConsolidated),
		zap.Int("format_fixes", r.FormatFixes),
		zap.String("reduction", fmt.Sprintf("%.1f%%", r.Reduction())),
	)

	for i, tc := range r.Top {
		pct := 0.0
		if r.TaggedEpisodes > 0 {
			pct = float64(tc.Count) / float64(r.TaggedEpisodes) * 100
		}
		log.Info("Top tag",
			zap.Int("rank", i+1),
			zap.String("tag", tc.Tag),
			zap.Int("episodes", tc.Count),
			zap.String("share", fmt.Sprintf("%.1f%%", pct)),
		)
	}
}
