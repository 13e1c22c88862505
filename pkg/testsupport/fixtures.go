// Package testsupport holds fixture and golden file helpers shared by tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

// LoadJSON decodes the JSON file at path into out.
func LoadJSON(path string, out any) error {
	if path == "" {
		return errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read fixture: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("testsupport: unmarshal fixture %s: %w", path, err)
	}
	return nil
}

// MustLoadJSON is LoadJSON failing the test on error.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()
	if err := LoadJSON(path, out); err != nil {
		t.Fatalf("load fixture: %v", err)
	}
}

// MustLoadUsers loads a users fixture.
func MustLoadUsers(t *testing.T, path string) []model.User {
	t.Helper()
	var users []model.User
	MustLoadJSON(t, path, &users)
	return users
}

// MustLoadPosts loads a posts fixture.
func MustLoadPosts(t *testing.T, path string) []model.Post {
	t.Helper()
	var posts []model.Post
	MustLoadJSON(t, path, &posts)
	return posts
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteGolden writes value as indented JSON to a golden file when
// UPDATE_GOLDENS is set. Returns true if the golden was written.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// ServeFile starts a test server answering every request with the raw bytes
// of path as JSON.
func ServeFile(t *testing.T, path string) *httptest.Server {
	t.Helper()
	data := MustReadGolden(t, path)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}
