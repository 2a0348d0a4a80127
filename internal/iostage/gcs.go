package iostage

import (
	"context"
	"errors"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/faersetl/faersetl/internal/iofs"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/mitchellh/go-homedir"
	"google.golang.org/api/option"
)

var errNoBucket = errors.New("bucket is not configured")

type gcsStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a Store in a Google Cloud Storage bucket. Without
// a credentials file the application default credentials are used.
func NewGCSStore(ctx context.Context, cfg config.StageConfig) (Store, error) {
	if cfg.Bucket == "" {
		return nil, BackendError("gcs", errNoBucket)
	}

	opts, err := gcsOptions(cfg)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, BackendError("gcs", err)
	}
	return &gcsStore{client: client, bucket: cfg.Bucket}, nil
}

func gcsOptions(cfg config.StageConfig) ([]option.ClientOption, error) {
	var res []option.ClientOption
	if cfg.CredentialsFile != "" {
		path, err := homedir.Expand(cfg.CredentialsFile)
		if err != nil {
			return nil, iofs.ReadFileError(cfg.CredentialsFile, err)
		}
		creds, err := os.ReadFile(path)
		if err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
		res = append(res, option.WithCredentialsJSON(creds))
	}
	if qp := os.Getenv("GOOGLE_CLOUD_QUOTA_PROJECT"); qp != "" {
		res = append(res, option.WithQuotaProject(qp))
	}
	return res, nil
}

func (g *gcsStore) Put(ctx context.Context, key string, r io.Reader) error {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return PutError(g.URI(key), err)
	}
	// the object becomes visible only after a successful Close
	if err := w.Close(); err != nil {
		return PutError(g.URI(key), err)
	}
	return nil
}

func (g *gcsStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	res, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, GetError(g.URI(key), err)
	}
	return res, nil
}

func (g *gcsStore) URI(key string) string {
	return "gs://" + g.bucket + "/" + key
}
