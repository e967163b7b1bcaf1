package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docgen/internal/plan/loader"
	"github.com/goliatone/go-docgen/pkg/plan"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(`{"title": "Guide"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(plan.NewLoaderOptions())
	doc, err := l.Load(context.Background(), plan.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	value, err := doc.Plan()
	if err != nil {
		t.Fatalf("Plan() returned error: %v", err)
	}
	if got := value.Resolve("title").Text(); got != "Guide" {
		t.Fatalf("title = %q, want Guide", got)
	}
}

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	options := plan.NewLoaderOptions()
	options.FileSystem = fstest.MapFS{
		"plans/guide.yml": &fstest.MapFile{Data: []byte("title: Guide\n")},
	}

	l := loader.New(options)
	doc, err := l.Load(context.Background(), plan.SourceFromFS("plans/guide.yml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := doc.Location(); got != "plans/guide.yml" {
		t.Fatalf("Location() = %q", got)
	}
}

func TestLoadFromURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title": "Remote"}`))
	}))
	defer server.Close()

	l := loader.New(plan.NewLoaderOptions())
	doc, err := l.Load(context.Background(), plan.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	value, err := doc.Plan()
	if err != nil {
		t.Fatalf("Plan() returned error: %v", err)
	}
	if got := value.Resolve("title").Text(); got != "Remote" {
		t.Fatalf("title = %q, want Remote", got)
	}
}

func TestLoadURLDisabled(t *testing.T) {
	t.Parallel()

	l := loader.New(plan.LoaderOptions{})
	if _, err := l.Load(context.Background(), plan.SourceFromURL("https://example.com/plan.json")); err == nil {
		t.Fatal("expected error when http support is disabled")
	}
}

func TestLoadURLRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer server.Close()

	l := loader.New(plan.NewLoaderOptions())
	if _, err := l.Load(context.Background(), plan.SourceFromURL(server.URL)); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestLoadCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(plan.NewLoaderOptions())
	if _, err := l.Load(ctx, plan.SourceFromFile("anything.json")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
