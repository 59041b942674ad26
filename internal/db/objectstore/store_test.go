package objectstore

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/kailas-cloud/episearch/internal/db"
)

func TestNewStore_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing endpoint", Config{Bucket: "site"}, true},
		{"missing bucket", Config{Endpoint: "localhost:9000"}, true},
		{"ok", Config{Endpoint: "localhost:9000", Bucket: "site", AccessKey: "a", SecretKey: "b"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewStore(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.bucket != "site" {
				t.Errorf("bucket = %q", s.bucket)
			}
		})
	}
}

func TestObjectErr(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	if err := objectErr(db.OpGetObject, notFound); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	err := objectErr(db.OpPutObject, denied)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPutObject {
		t.Fatalf("expected db.Error{Op: PutObject}, got %v", err)
	}
	if errors.Is(err, db.ErrKeyNotFound) {
		t.Error("access denied must not look like a missing key")
	}
}
