// Package episodes loads the episode metadata export and writes rewritten exports back.
package episodes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/episearch/internal/domain"
	"github.com/kailas-cloud/episearch/internal/domain/episode"
	"github.com/kailas-cloud/episearch/internal/repository/atomicfile"
)

// objectGetter is the consumer interface for object-store sources (ISP).
type objectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Repo reads the export from a local file or an object-store key.
type Repo struct {
	read func(ctx context.Context) ([]byte, error)
	name string
}

// NewFile reads the export from path.
func NewFile(path string) *Repo {
	return &Repo{
		name: path,
		read: func(context.Context) ([]byte, error) {
			return os.ReadFile(filepath.Clean(path))
		},
	}
}

// NewObject reads the export from key in the object store.
func NewObject(store objectGetter, key string) *Repo {
	return &Repo{
		name: "object:" + key,
		read: func(ctx context.Context) ([]byte, error) {
			return store.Get(ctx, key)
		},
	}
}

// Name describes where the export comes from.
func (r *Repo) Name() string { return r.name }

// Load decodes the export into records, preserving order.
func (r *Repo) Load(ctx context.Context) ([]episode.Record, error) {
	var records []episode.Record
	if err := r.decode(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadRaw decodes the export keeping every field as-is.
func (r *Repo) LoadRaw(ctx context.Context) ([]episode.Raw, error) {
	var rows []episode.Raw
	if err := r.decode(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repo) decode(ctx context.Context, dst any) error {
	data, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w: %w", r.name, domain.ErrSourceUnavailable, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%s: expected a JSON array of episodes: %w", r.name, domain.ErrSourceUnavailable)
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("parse %s: %w: %w", r.name, domain.ErrSourceUnavailable, err)
	}
	return nil
}

// SaveRaw writes rows to path as indented JSON, replacing the file atomically.
func SaveRaw(path string, rows []episode.Raw) error {
	if rows == nil {
		rows = []episode.Raw{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := atomicfile.Write(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArtifactWrite, err)
	}
	return nil
}
