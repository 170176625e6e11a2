// Package s3 contains implementation FileStorage interface with any s3-compatible storage.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/resume/internal/storage"
)

var _ storage.FileStorage = &s3{}

type s3 struct {
	c *minio.Client
	b string
}

// NewStorage returns s3 implementation of FileStorage interface.
// The bucket is created when it doesn't exist.
func NewStorage(ctx context.Context, client *minio.Client, bucket string) (storage.FileStorage, error) {
	logrus.WithField("bucket", bucket).Debug("check bucket existence")
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		logrus.WithField("bucket", bucket).Info("create bucket in s3 storage")
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket: %w", err)
		}
	}

	return &s3{
		c: client,
		b: bucket,
	}, nil
}

func (s s3) Ping(ctx context.Context) error {
	if _, err := s.c.BucketExists(ctx, s.b); err != nil {
		return errors.New("connection with S3 seems broken") // nolint:goerr113
	}
	return nil
}

// Read returns ReadCloser with file content from s3 storage.
func (s s3) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	r, err := s.c.GetObject(ctx, s.b, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	if _, err := r.Stat(); err != nil {
		r.Close() // nolint
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reader stats: %w", err)
	}

	return r, nil
}

// Write puts file into s3 storage.
func (s s3) Write(ctx context.Context, r io.Reader, size int64, path string, contentType string) error {
	if _, err := s.c.PutObject(ctx, s.b, path, r, size, minio.PutObjectOptions{
		DisableMultipart: true,
		ContentType:      contentType,
	}); err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}
