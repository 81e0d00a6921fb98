package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsrosen/htmlreader/internal/diagnostics"
	"github.com/dsrosen/htmlreader/internal/fetch"
)

func TestFileReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<p>hi</p>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := fetch.File(path)
	if err != nil {
		t.Fatalf("File(%q): %v", path, err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("File content = %q, want %q", data, "<p>hi</p>")
	}
}

func TestFileMissingReturnsFileNotFound(t *testing.T) {
	_, err := fetch.File(filepath.Join(t.TempDir(), "missing.html"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Status != diagnostics.FileNotFound {
		t.Fatalf("error = %v, want a FileNotFound diagnostics.Error", err)
	}
}

func TestURLFetchesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	data, err := fetch.URL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("URL(%q): %v", srv.URL, err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("URL content = %q, want %q", data, "<html></html>")
	}
}

func TestURLNonOKStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fetch.URL(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	de, ok := err.(*diagnostics.Error)
	if !ok || de.Status != diagnostics.IOError {
		t.Fatalf("error = %v, want an IOError diagnostics.Error", err)
	}
}

func TestURLContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch.URL(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected an error for an already-cancelled context")
	}
}
