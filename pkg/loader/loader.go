package loader

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches action definition documents from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) ([]Definition, error)
}

// LoaderOptions configures the default loader implementation.
type LoaderOptions struct {
	// FileSystem resolves SourceKindFS sources.
	FileSystem fs.FS
	// HTTPClient fetches SourceKindURL sources. When nil, URL sources are
	// rejected unless AllowHTTPFallback is set.
	HTTPClient *http.Client
	// AllowHTTPFallback creates a default client when HTTPClient is nil.
	AllowHTTPFallback bool
	// RequestTimeout bounds remote fetches.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the fs.FS used for SourceKindFS sources.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = fsys
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions resolves the supplied options.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	opts := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return opts
}
