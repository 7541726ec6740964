package actionform

import (
	internalLoader "github.com/goliatone/go-actionform/internal/loader"
	"github.com/goliatone/go-actionform/pkg/loader"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...loader.LoaderOption) loader.Loader {
	return internalLoader.New(loader.NewLoaderOptions(options...))
}
