// Package artifact defines the static search artifact consumed by the episode search page.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/episearch/internal/domain/episode"
)

// Version is the artifact schema version.
const Version = "1.0"

// Artifact bundles display records, the inverted index and filter values.
type Artifact struct {
	Episodes []episode.Searchable `json:"episodes"`
	Index    map[string][]string  `json:"index"`
	Filters  Filters              `json:"filters"`
	Metadata Metadata             `json:"metadata"`
}

// Filters holds the distinct values offered by the search page's filter controls.
type Filters struct {
	Industries    []string `json:"industries"`
	Subcategories []string `json:"subcategories"`
}

// Metadata describes the artifact.
type Metadata struct {
	TotalEpisodes int    `json:"total_episodes"`
	TotalTokens   int    `json:"total_tokens"`
	Version       string `json:"version"`
}

// Encode serializes the artifact as compact JSON without HTML escaping or a trailing
// newline. Map keys are sorted, so equal artifacts encode to equal bytes.
func Encode(a *Artifact) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses an encoded artifact.
func Decode(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Metadata.Version == "" {
		return nil, fmt.Errorf("decode artifact: missing metadata.version")
	}
	return &a, nil
}
