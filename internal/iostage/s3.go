package iostage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/faersetl/faersetl/pkg/config"
)

// s3API is the part of *s3.Client used by the store.
type s3API interface {
	PutObject(
		ctx context.Context,
		in *s3.PutObjectInput,
		opts ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
	GetObject(
		ctx context.Context,
		in *s3.GetObjectInput,
		opts ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

type s3Store struct {
	client s3API
	bucket string
}

// NewS3Store creates a Store in an S3 bucket. Static credentials are
// used when both keys are configured, otherwise the default AWS
// credential chain applies.
func NewS3Store(ctx context.Context, cfg config.StageConfig) (Store, error) {
	if cfg.Bucket == "" {
		return nil, BackendError("s3", errNoBucket)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "",
			),
		))
	}
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, BackendError("s3", err)
	}
	return &s3Store{client: s3.NewFromConfig(awsCfg), bucket: cfg.Bucket}, nil
}

// Put buffers the content, S3 needs to know the length of an upload.
func (s *s3Store) Put(ctx context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return PutError(s.URI(key), err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/csv"),
	})
	if err != nil {
		return PutError(s.URI(key), err)
	}
	return nil
}

func (s *s3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, GetError(s.URI(key), err)
	}
	return out.Body, nil
}

func (s *s3Store) URI(key string) string {
	return "s3://" + s.bucket + "/" + key
}
