package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBuild_Observe(t *testing.T) {
	b := NewBuild(prometheus.NewRegistry())

	b.ObserveRecords(10, 2)
	b.ObserveRecords(5, 0)
	b.ObserveIndex(321, 150*time.Millisecond)
	b.ObserveArtifact("file", 2048)
	b.PublishFailed("valkey")

	if v := testutil.ToFloat64(b.recordsTotal.WithLabelValues(StatusIndexed)); v != 15 {
		t.Errorf("indexed = %f, want 15", v)
	}
	if v := testutil.ToFloat64(b.recordsTotal.WithLabelValues(StatusSkipped)); v != 2 {
		t.Errorf("skipped = %f, want 2", v)
	}
	if v := testutil.ToFloat64(b.tokens); v != 321 {
		t.Errorf("tokens = %f, want 321", v)
	}
	if v := testutil.ToFloat64(b.artifactBytes.WithLabelValues("file")); v != 2048 {
		t.Errorf("artifact bytes = %f, want 2048", v)
	}
	if v := testutil.ToFloat64(b.publishErrors.WithLabelValues("valkey")); v != 1 {
		t.Errorf("publish errors = %f, want 1", v)
	}
	if testutil.CollectAndCount(b.duration) != 1 {
		t.Error("expected one duration observation")
	}
}

func TestBuild_NilSafe(t *testing.T) {
	var b *Build
	b.ObserveRecords(1, 1)
	b.ObserveIndex(1, time.Second)
	b.ObserveArtifact("file", 1)
	b.PublishFailed("file")
	b.Succeeded(time.Now())
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := NewBuild(reg)
	b.ObserveRecords(3, 1)
	b.Succeeded(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "episearch.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `episearch_build_records_total{status="indexed"} 3`) {
		t.Errorf("missing indexed counter in:\n%s", out)
	}
	if !strings.Contains(out, "episearch_build_last_success_timestamp_seconds 1.7e+09") {
		t.Errorf("missing last success gauge in:\n%s", out)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prometheus.NewRegistry())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
