package entity

import (
	"context"
	"io"
)

type StorageRepository interface {
	UploadObject(ctx context.Context, bucket string, key string, r io.Reader) error
}

// FileObject is one named entry of an archive.
type FileObject struct {
	Name string
	Body []byte
}
