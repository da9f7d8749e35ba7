package archive

import (
	"archive/tar"
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"

	"arithma_tech/entity"
)

type TarArchiver struct {
}

func NewTarArchiver() Archiver {
	return &TarArchiver{}
}

func (a *TarArchiver) Ext() string {
	return ".tar"
}

func (a *TarArchiver) Compress(ctx context.Context, fileObjects []entity.FileObject, buf io.Writer) error {
	_, span := otel.Tracer(traceName).Start(ctx, "compress - tar")
	defer span.End()

	tw := tar.NewWriter(buf)
	if err := writeEntries(tw, fileObjects); err != nil {
		return err
	}
	return tw.Close()
}

func (a *TarArchiver) Extract(ctx context.Context, buf io.Reader) ([]entity.FileObject, error) {
	_, span := otel.Tracer(traceName).Start(ctx, "extract - tar")
	defer span.End()

	return readEntries(tar.NewReader(buf))
}

func writeEntries(tw *tar.Writer, fileObjects []entity.FileObject) error {
	now := time.Now()
	for _, fileObject := range fileObjects {
		hdr := &tar.Header{
			Name:    fileObject.Name,
			Mode:    int64(0600),
			Size:    int64(len(fileObject.Body)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if _, err := tw.Write(fileObject.Body); err != nil {
			return err
		}
	}
	return nil
}

func readEntries(tr *tar.Reader) ([]entity.FileObject, error) {
	var extractedFiles []entity.FileObject
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		fileBody, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}

		extractedFiles = append(extractedFiles, entity.FileObject{Name: hdr.Name, Body: fileBody})
	}
	return extractedFiles, nil
}
