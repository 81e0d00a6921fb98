// Package fetch is the byte-stream acquisition glue: reading a file from
// disk or fetching a URL over HTTP, and turning the ordinary failure modes
// of each into the same typed diagnostics.Error the parser itself raises.
// It knows nothing about HTML; it only gets bytes into the caller's hands.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"

	"github.com/dsrosen/htmlreader/internal/diagnostics"
)

// File reads the named file in full, wrapping the usual os/io failures into
// a diagnostics.Error so callers can handle acquisition failures the same
// way they handle parse failures.
func File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, diagnostics.Wrap(diagnostics.FileNotFound, err)
		}
		return nil, diagnostics.Wrap(diagnostics.IOError, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.IOError, err)
	}
	return data, nil
}

// URL fetches the given URL with an HTTP GET, honoring ctx for cancellation
// and deadlines. A non-2xx response is treated as an IOError carrying the
// status line.
func URL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.IOError, errors.Wrap(err, "build request"))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.IOError, errors.Wrap(err, "do request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, diagnostics.Wrap(diagnostics.IOError, errors.Errorf("unexpected status: %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, diagnostics.Wrap(diagnostics.IOError, errors.Wrap(err, "read body"))
	}
	return data, nil
}
