package iostage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/faersetl/faersetl/internal/iofs"
)

type fileStore struct {
	root string
}

// NewFileStore creates a Store that keeps objects as files under root.
func NewFileStore(root string) (Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, BackendError("file", err)
	}
	if err = iofs.EnsureDir(abs); err != nil {
		return nil, err
	}
	return &fileStore{root: abs}, nil
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

// Put writes into a temporary file that replaces the object only
// after all content is written.
func (f *fileStore) Put(ctx context.Context, key string, r io.Reader) error {
	path := f.path(key)
	if err := ctx.Err(); err != nil {
		return PutError(f.URI(key), err)
	}
	if err := iofs.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stage-*")
	if err != nil {
		return PutError(f.URI(key), err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return PutError(f.URI(key), err)
	}
	if err = tmp.Close(); err != nil {
		return PutError(f.URI(key), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return PutError(f.URI(key), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return PutError(f.URI(key), err)
	}
	return nil
}

func (f *fileStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, GetError(f.URI(key), err)
	}
	res, err := os.Open(f.path(key))
	if err != nil {
		return nil, GetError(f.URI(key), err)
	}
	return res, nil
}

func (f *fileStore) URI(key string) string {
	return "file://" + filepath.ToSlash(f.path(key))
}
