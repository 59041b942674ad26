// Package build runs one index build: load, index, encode, write, publish.
package build

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/episearch/internal/domain/artifact"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
)

// SampleSize is how many tokens the report lists.
const SampleSize = 20

// TokenSample is one token of the report sample with its posting count.
type TokenSample struct {
	Token    string
	Episodes int
}

// Report summarizes a finished build.
type Report struct {
	Source        string
	Records       int
	Episodes      int
	Skipped       int
	Tokens        int
	Industries    int
	Subcategories int
	Bytes         int
	Workers       int
	Duration      time.Duration
	Sample        []TokenSample
	Published     []string
}

// SizeKB returns the artifact size in kilobytes.
func (r Report) SizeKB() float64 { return float64(r.Bytes) / 1024 }

// Service coordinates a build run.
type Service struct {
	source     Source
	indexer    Indexer
	primary    Sink
	publishers []Sink
	recorder   Recorder
	now        func() time.Time
}

// New creates a build service. primary is written first; a failure there aborts the run.
func New(source Source, indexer Indexer, primary Sink) *Service {
	return &Service{source: source, indexer: indexer, primary: primary, now: time.Now}
}

// WithPublishers adds sinks that receive the artifact after the primary write.
func (s *Service) WithPublishers(sinks ...Sink) *Service {
	s.publishers = append(s.publishers, sinks...)
	return s
}

// WithRecorder attaches build metrics.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Run loads the source, builds the artifact and writes it to every sink.
// Nothing is written when loading, building or encoding fails.
func (s *Service) Run(ctx context.Context) (Report, error) {
	log := logpkg.FromContext(ctx)
	report := Report{Source: s.source.Name()}

	records, err := s.source.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load episodes: %w", err)
	}
	log.Info("Episodes loaded", zap.String("source", report.Source), zap.Int("records", len(records)))

	art, stats, err := s.indexer.Build(ctx, records)
	if err != nil {
		return report, fmt.Errorf("build index: %w", err)
	}

	data, err := artifact.Encode(art)
	if err != nil {
		return report, err //nolint:wrapcheck // Encode already names the step
	}

	report.Records = stats.Records
	report.Episodes = stats.Indexed
	report.Skipped = stats.Skipped
	report.Tokens = stats.Tokens
	report.Industries = len(art.Filters.Industries)
	report.Subcategories = len(art.Filters.Subcategories)
	report.Bytes = len(data)
	report.Workers = stats.Workers
	report.Duration = stats.Duration
	report.Sample = sample(art.Index, SampleSize)

	if s.recorder != nil {
		s.recorder.ObserveRecords(stats.Indexed, stats.Skipped)
		s.recorder.ObserveIndex(stats.Tokens, stats.Duration)
	}

	if err := s.publish(ctx, s.primary, data); err != nil {
		return report, err
	}
	report.Published = append(report.Published, s.primary.Name())

	for _, sink := range s.publishers {
		if err := s.publish(ctx, sink, data); err != nil {
			return report, err
		}
		report.Published = append(report.Published, sink.Name())
	}

	if s.recorder != nil {
		s.recorder.Succeeded(s.now())
	}
	logReport(log, report)
	return report, nil
}

func (s *Service) publish(ctx context.Context, sink Sink, data []byte) error {
	if err := sink.Publish(ctx, data); err != nil {
		if s.recorder != nil {
			s.recorder.PublishFailed(sink.Name())
		}
		return fmt.Errorf("publish to %s: %w", sink.Name(), err)
	}
	if s.recorder != nil {
		s.recorder.ObserveArtifact(sink.Name(), len(data))
	}
	logpkg.FromContext(ctx).Debug("Artifact published", zap.String("sink", sink.Name()), zap.Int("bytes", len(data)))
	return nil
}

// sample returns the first n tokens in sorted order with their posting counts.
func sample(idx map[string][]string, n int) []TokenSample {
	tokens := make([]string, 0, len(idx))
	for t := range idx {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	if len(tokens) > n {
		tokens = tokens[:n]
	}

	out := make([]TokenSample, len(tokens))
	for i, t := range tokens {
		out[i] = TokenSample{Token: t, Episodes: len(idx[t])}
	}
	return out
}

func logReport(log *zap.Logger, r Report) {
	log.Info("Search index built",
		zap.String("source", r.Source),
		zap.Int("episodes", r.Episodes),
		zap.Int("skipped", r.Skipped),
		zap.Int("tokens", r.Tokens),
		zap.Int("industries", r.Industries),
		zap.Int("subcategories", r.Subcategories),
		zap.String("size", fmt.Sprintf("%.1f KB", r.SizeKB())),
		zap.Int("workers", r.Workers),
		zap.Duration("took", r.Duration),
		zap.Strings("published", r.Published),
	)

	sampleFields := make([]zap.Field, 0, len(r.Sample))
	for _, ts := range r.Sample {
		sampleFields = append(sampleFields, zap.Int(ts.Token, ts.Episodes))
	}
	log.Debug("Index sample", zap.Dict("tokens", sampleFields...))
}
