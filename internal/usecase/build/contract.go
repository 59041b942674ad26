package build

import (
	"context"
	"time"

	"github.com/kailas-cloud/episearch/internal/domain/artifact"
	"github.com/kailas-cloud/episearch/internal/domain/episode"
	"github.com/kailas-cloud/episearch/internal/usecase/index"
)

// Source loads episode records in export order.
type Source interface {
	Load(ctx context.Context) ([]episode.Record, error)
	Name() string
}

// Indexer turns records into the search artifact.
type Indexer interface {
	Build(ctx context.Context, records []episode.Record) (*artifact.Artifact, index.Stats, error)
}

// Sink receives the encoded artifact.
type Sink interface {
	Publish(ctx context.Context, data []byte) error
	Name() string
}

// Recorder observes build outcomes. *metrics.Build satisfies it.
type Recorder interface {
	ObserveRecords(indexed, skipped int)
	ObserveIndex(tokens int, took time.Duration)
	ObserveArtifact(sink string, size int)
	PublishFailed(sink string)
	Succeeded(at time.Time)
}
