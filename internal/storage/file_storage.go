package storage

import (
	"context"
	"io"

	"github.com/Decentr-net/resume/internal/health"
)

//go:generate mockgen -destination=./mock/file_storage.go -package=mock -source=file_storage.go

// FileStorage is interface which provides access to rendered files.
type FileStorage interface {
	health.Pinger

	Read(ctx context.Context, path string) (io.ReadCloser, error)
	Write(ctx context.Context, data io.Reader, size int64, path string, contentType string) error
}
