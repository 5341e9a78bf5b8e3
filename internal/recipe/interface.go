package recipe

import (
	"context"
)

// Loader is the interface for a format-specific recipe file loader. A Loader
// only parses and evaluates; schema validation is the validate package's job
// and happens on the returned Record.
type Loader interface {
	// LoadFile reads a single recipe file and translates it into the
	// format-agnostic Record.
	LoadFile(ctx context.Context, path string) (Record, error)
}
