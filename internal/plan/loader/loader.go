package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgplan "github.com/goliatone/go-docgen/pkg/plan"
)

// Loader implements pkgplan.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ pkgplan.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgplan.LoaderOptions) pkgplan.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a plan from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgplan.Source) (pkgplan.Document, error) {
	if src == nil {
		return pkgplan.Document{}, errors.New("plan loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgplan.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgplan.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgplan.SourceKindURL:
		if !l.allowHTTP {
			return pkgplan.Document{}, errors.New("plan loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("plan loader: unsupported source kind")
	}
	if err != nil {
		return pkgplan.Document{}, err
	}

	return pkgplan.NewDocument(src, data)
}
