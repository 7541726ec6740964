package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgloader "github.com/goliatone/go-actionform/pkg/loader"
)

// Loader implements pkgloader.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ pkgloader.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgloader.LoaderOptions) *Loader {
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

// Load fetches the document behind src and parses the actions it defines.
func (l *Loader) Load(ctx context.Context, src pkgloader.Source) ([]pkgloader.Definition, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgloader.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgloader.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgloader.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("loader: unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	return pkgloader.Parse(data, src.Location())
}
