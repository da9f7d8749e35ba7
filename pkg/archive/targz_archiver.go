package archive

import (
	"archive/tar"
	"context"
	"io"

	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel"

	"arithma_tech/entity"
)

type TarGzArchiver struct {
	level int
}

func NewTarGzArchiver() Archiver {
	return &TarGzArchiver{level: gzip.DefaultCompression}
}

func (a *TarGzArchiver) Ext() string {
	return ".tar.gz"
}

func (a *TarGzArchiver) Compress(ctx context.Context, fileObjects []entity.FileObject, buf io.Writer) error {
	_, span := otel.Tracer(traceName).Start(ctx, "compress - tar gz")
	defer span.End()

	gw, err := gzip.NewWriterLevel(buf, a.level)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(gw)
	if err := writeEntries(tw, fileObjects); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gw.Close()
}

func (a *TarGzArchiver) Extract(ctx context.Context, buf io.Reader) ([]entity.FileObject, error) {
	_, span := otel.Tracer(traceName).Start(ctx, "extract - tar gz")
	defer span.End()

	gr, err := gzip.NewReader(buf)
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return readEntries(tar.NewReader(gr))
}
