// Package artifact writes the built search artifact to its destinations.
package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/kailas-cloud/episearch/internal/domain"
	domart "github.com/kailas-cloud/episearch/internal/domain/artifact"
	"github.com/kailas-cloud/episearch/internal/repository/atomicfile"
)

// ContentType is sent with every published copy.
const ContentType = "application/json"

// Sink names used in logs and metric labels.
const (
	SinkFile   = "file"
	SinkGzip   = "gzip"
	SinkObject = "object"
	SinkValkey = "valkey"
)

// File is the local artifact, optionally with a gzip sibling.
type File struct {
	path string
	gzip bool
}

// NewFile creates a file sink for path. With gz set, <path>.gz is written too.
func NewFile(path string, gz bool) *File {
	return &File{path: path, gzip: gz}
}

// Name implements the build sink contract.
func (f *File) Name() string { return SinkFile }

// Path returns the artifact path.
func (f *File) Path() string { return f.path }

// GzipPath returns the compressed copy's path.
func (f *File) GzipPath() string { return f.path + ".gz" }

// Publish replaces the artifact file and, when enabled, its gzip copy. Both are staged
// before either is moved into place; the gzip copy is committed first and the artifact
// last, so any failure leaves the previous artifact in place.
func (f *File) Publish(_ context.Context, data []byte) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %w", domain.ErrArtifactWrite, dir, err)
		}
	}

	plain, err := atomicfile.Stage(f.path, 0o644, func(w io.Writer) error {
		_, err := w.Write(data)
		return err //nolint:wrapcheck // wrapped by Stage
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArtifactWrite, err)
	}
	defer plain.Discard()

	if f.gzip {
		compressed, err := atomicfile.Stage(f.GzipPath(), 0o644, f.compress(data))
		if err != nil {
			return fmt.Errorf("%w: %s copy: %w", domain.ErrArtifactWrite, SinkGzip, err)
		}
		if err := compressed.Commit(); err != nil {
			return fmt.Errorf("%w: %s copy: %w", domain.ErrArtifactWrite, SinkGzip, err)
		}
	}

	if err := plain.Commit(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArtifactWrite, err)
	}
	return nil
}

func (f *File) compress(data []byte) func(w io.Writer) error {
	return func(w io.Writer) error {
		zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return err //nolint:wrapcheck // wrapped by Stage
		}
		zw.Name = filepath.Base(f.path)
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err //nolint:wrapcheck // wrapped by Stage
		}
		return zw.Close() //nolint:wrapcheck // wrapped by Stage
	}
}

// Read returns the current artifact bytes.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// HealthCheck verifies the artifact exists and decodes.
func (f *File) HealthCheck(_ context.Context) error {
	data, err := f.Read()
	if err != nil {
		return err
	}
	if _, err := domart.Decode(data); err != nil {
		return fmt.Errorf("decode artifact: %w", err)
	}
	return nil
}

// objectPutter is the consumer interface for the object store (ISP).
type objectPutter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Object publishes the artifact to an object-store key.
type Object struct {
	store objectPutter
	key   string
}

// NewObject creates an object-store sink.
func NewObject(store objectPutter, key string) *Object {
	return &Object{store: store, key: key}
}

// Name implements the build sink contract.
func (o *Object) Name() string { return SinkObject }

// Publish uploads data under the configured key.
func (o *Object) Publish(ctx context.Context, data []byte) error {
	if err := o.store.Put(ctx, o.key, data, ContentType); err != nil {
		return fmt.Errorf("%w: put %s: %w", domain.ErrArtifactWrite, o.key, err)
	}
	return nil
}

// kvSetter is the consumer interface for Valkey (ISP).
type kvSetter interface {
	Set(ctx context.Context, key string, value []byte) error
}

// Valkey publishes the artifact under a Valkey key.
type Valkey struct {
	store kvSetter
	key   string
}

// NewValkey creates a Valkey sink.
func NewValkey(store kvSetter, key string) *Valkey {
	return &Valkey{store: store, key: key}
}

// Name implements the build sink contract.
func (v *Valkey) Name() string { return SinkValkey }

// Publish stores data under the configured key.
func (v *Valkey) Publish(ctx context.Context, data []byte) error {
	if err := v.store.Set(ctx, v.key, data); err != nil {
		return fmt.Errorf("%w: set %s: %w", domain.ErrArtifactWrite, v.key, err)
	}
	return nil
}
