// Package index builds the static search artifact from episode records.
package index

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/episearch/internal/domain"
	"github.com/kailas-cloud/episearch/internal/domain/artifact"
	"github.com/kailas-cloud/episearch/internal/domain/episode"
	logpkg "github.com/kailas-cloud/episearch/internal/logger"
)

// MaxRecords is the largest export a single build accepts (positions are uint32).
const MaxRecords = math.MaxUint32

// Stats summarizes one build.
type Stats struct {
	Records  int
	Indexed  int
	Skipped  int
	Tokens   int
	Workers  int
	Duration time.Duration
}

// Builder turns episode records into a search artifact.
// A Builder holds no state between builds and is safe for concurrent use.
type Builder struct {
	workers int
}

// New creates a Builder. workers <= 0 means runtime.NumCPU().
func New(workers int) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Builder{workers: workers}
}

// Workers returns the configured worker count.
func (b *Builder) Workers() int { return b.workers }

// Build indexes records and assembles the artifact. Records without an identifier are
// skipped and logged. The only errors are context cancellation and oversized input.
func (b *Builder) Build(ctx context.Context, records []episode.Record) (*artifact.Artifact, Stats, error) {
	start := time.Now()
	logger := logpkg.FromContext(ctx)

	if uint64(len(records)) > MaxRecords {
		return nil, Stats{}, fmt.Errorf("%d records exceed the build limit", len(records))
	}

	ids := make([]string, len(records))
	slots := make([]*episode.Searchable, len(records))

	chunks := b.chunks(len(records))
	partials := make([]*accumulator, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for w, c := range chunks {
		g.Go(func() error {
			acc := newAccumulator()
			for pos := c.lo; pos < c.hi; pos++ {
				if pos%256 == 0 {
					if err := gctx.Err(); err != nil {
						return fmt.Errorf("build interrupted: %w", err)
					}
				}
				rec := &records[pos]
				id := rec.EpisodeID()
				if id == "" {
					err := &domain.SkippedRecordError{Position: pos, Reason: "missing identifier"}
					logger.Warn("Skipping record", zap.Int("position", pos), zap.Error(err))
					continue
				}
				ids[pos] = id
				acc.add(uint32(pos), rec)
				p := rec.Project()
				slots[pos] = &p
			}
			partials[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	acc := newAccumulator()
	for _, p := range partials {
		acc.merge(p)
	}

	episodes := make([]episode.Searchable, 0, len(records))
	for _, s := range slots {
		if s != nil {
			episodes = append(episodes, *s)
		}
	}

	idx := acc.index(ids)
	a := &artifact.Artifact{
		Episodes: episodes,
		Index:    idx,
		Filters: artifact.Filters{
			Industries:    sortedValues(acc.industries),
			Subcategories: sortedValues(acc.subcategories),
		},
		Metadata: artifact.Metadata{
			TotalEpisodes: len(episodes),
			TotalTokens:   len(idx),
			Version:       artifact.Version,
		},
	}

	stats := Stats{
		Records:  len(records),
		Indexed:  len(episodes),
		Skipped:  len(records) - len(episodes),
		Tokens:   len(idx),
		Workers:  len(chunks),
		Duration: time.Since(start),
	}
	return a, stats, nil
}

type chunk struct{ lo, hi int }

// chunks splits n records into at most b.workers contiguous ranges.
func (b *Builder) chunks(n int) []chunk {
	if n == 0 {
		return nil
	}
	w := min(b.workers, n)
	size := (n + w - 1) / w

	out := make([]chunk, 0, w)
	for lo := 0; lo < n; lo += size {
		out = append(out, chunk{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
