package plan

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader resolves a Source into a Document. The built-in implementation
// lives under internal/plan/loader; the interface is public so callers can
// substitute their own resolution strategy.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configure the built-in loader implementation.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups. Nil disables them.
	FileSystem fs.FS
	// HTTPClient overrides the client used for SourceKindURL lookups.
	HTTPClient *http.Client
	// AllowHTTPFallback enables URL sources with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool
	// RequestTimeout bounds URL fetches. Zero means no explicit timeout.
	RequestTimeout time.Duration
}

// NewLoaderOptions returns defaults suitable for local plan files: file
// sources enabled, HTTP fetches allowed with a conservative timeout.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{
		AllowHTTPFallback: true,
		RequestTimeout:    30 * time.Second,
	}
}
