package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"arithma_tech/entity"
	"arithma_tech/pkg/archive"
	"arithma_tech/pkg/logger"
)

// Lister is the read side of the history store.
type Lister interface {
	ListAll(ctx context.Context) ([]entity.OperationRecord, error)
}

// Exporter bundles a snapshot of the history into an archive.
type Exporter struct {
	history  Lister
	archiver archive.Archiver
	l        logger.Interface
}

func NewExporter(history Lister, archiver archive.Archiver, l logger.Interface) *Exporter {
	return &Exporter{history: history, archiver: archiver, l: l}
}

// DefaultKey names an export object after the time it was taken.
func (e *Exporter) DefaultKey(at time.Time) string {
	return fmt.Sprintf("history-%s%s", at.UTC().Format("20060102T150405Z"), e.archiver.Ext())
}

// Export writes records.json and records.yaml into w and returns the record count.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "Export")
	defer span.End()

	records, err := e.history.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if records == nil {
		records = []entity.OperationRecord{}
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	jsonBody, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}
	yamlBody, err := yaml.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("encode yaml: %w", err)
	}

	files := []entity.FileObject{
		{Name: "records.json", Body: jsonBody},
		{Name: "records.yaml", Body: yamlBody},
	}
	if err := e.archiver.Compress(ctx, files, w); err != nil {
		return 0, fmt.Errorf("archive history: %w", err)
	}

	e.l.Info("exported %d history records", len(records))
	return len(records), nil
}

// ExportToStorage uploads the archive to bucket/key.
func (e *Exporter) ExportToStorage(ctx context.Context, storage entity.StorageRepository, bucket, key string) (int, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "ExportToStorage")
	defer span.End()

	span.SetAttributes(attribute.String("bucket", bucket))
	span.SetAttributes(attribute.String("key", key))

	buf := new(bytes.Buffer)
	n, err := e.Export(ctx, buf)
	if err != nil {
		return 0, err
	}

	if err := storage.UploadObject(ctx, bucket, key, buf); err != nil {
		return 0, fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}
	return n, nil
}
