// Package iostage keeps raw and normalized data in object storage as
// CSV files. The local file system, Amazon S3 and Google Cloud Storage
// are supported.
package iostage

import (
	"context"
	"fmt"
	"io"

	"github.com/faersetl/faersetl/pkg/config"
)

// Store is a minimal object storage.
type Store interface {
	// Put replaces the object at key with the content of r.
	Put(ctx context.Context, key string, r io.Reader) error

	// Get opens the object at key for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// URI returns a human readable location of the object.
	URI(key string) string
}

// New creates a Store for the backend named in cfg.Stage.Backend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Stage.Backend {
	case "file":
		return NewFileStore(cfg.StageRoot())
	case "s3":
		return NewS3Store(ctx, cfg.Stage)
	case "gcs":
		return NewGCSStore(ctx, cfg.Stage)
	}
	return nil, BackendError(
		cfg.Stage.Backend, fmt.Errorf("unknown backend"),
	)
}
