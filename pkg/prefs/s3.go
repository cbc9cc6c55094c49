package prefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client abstracts the S3 API operations used by [S3]. The [s3.Client]
// type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3 is a Backend on Amazon S3 or any S3-compatible object store (MinIO,
// R2, etc.). Objects live under <appID>/<key>.<ext>; PutObject replaces an
// object in a single operation, so the store's native overwrite is the
// atomic step. Useful for roaming preferences shared across machines.
//
// The caller is responsible for configuring the [s3.Client] with
// appropriate credentials, region, and endpoint.
type S3 struct {
	client S3Client
	bucket string
	ext    string
	prefix string // set by EnsureContainer
}

// S3Options configures the S3 backend.
type S3Options struct {
	// Client is a pre-configured S3 client. Required.
	Client S3Client

	// Bucket is the bucket holding preference objects. Required.
	Bucket string

	// Ext is the object key extension without dot, normally Codec.Ext().
	// Required.
	Ext string
}

// NewS3 creates an S3-backed Backend.
func NewS3(opts S3Options) (*S3, error) {
	if opts.Client == nil {
		return nil, errors.New("prefs: S3Options.Client is required")
	}
	if opts.Bucket == "" {
		return nil, errors.New("prefs: S3Options.Bucket is required")
	}
	if opts.Ext == "" {
		return nil, errors.New("prefs: S3Options.Ext is required")
	}
	return &S3{client: opts.Client, bucket: opts.Bucket, ext: opts.Ext}, nil
}

// EnsureContainer verifies the bucket is reachable and records the app ID
// as the object key prefix.
func (s *S3) EnsureContainer(ctx context.Context, appID string) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return fmt.Errorf("head bucket %q: %w", s.bucket, err)
	}
	s.prefix = appID + "/"
	return nil
}

func (s *S3) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3) WriteAtomic(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (s *S3) Close() error { return nil }

// key builds the full object key for a file name.
func (s *S3) key(name string) string {
	return s.prefix + name + "." + s.ext
}

// isS3NotFound reports whether err indicates the S3 object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ Backend = (*S3)(nil)
