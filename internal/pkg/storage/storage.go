package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

type FileStorage interface {
	// Upload stores the content at path and returns the cleaned path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
}
