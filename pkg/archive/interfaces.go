package archive

import (
	"context"
	"io"

	"arithma_tech/entity"
)

const traceName = "archive"

type Archiver interface {
	Compress(ctx context.Context, fileObjects []entity.FileObject, buf io.Writer) error
	Extract(ctx context.Context, r io.Reader) ([]entity.FileObject, error)
	Ext() string
}

// ForFormat returns the archiver for "tar" or "tar.gz".
func ForFormat(format string) (Archiver, bool) {
	switch format {
	case "tar":
		return NewTarArchiver(), true
	case "tar.gz", "tgz", "":
		return NewTarGzArchiver(), true
	default:
		return nil, false
	}
}
