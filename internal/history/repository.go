package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"arithma_tech/entity"
	"arithma_tech/pkg/logger"
)

const traceName = "history"

// Repository is the gorm backed history store.
type Repository struct {
	mu  sync.RWMutex
	db  *gorm.DB
	l   logger.Interface
	now func() time.Time

	subscribers []entity.HistorySubscriber
}

var _ entity.HistoryRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB, l logger.Interface) *Repository {
	return &Repository{db: db, l: l, now: defaultNow}
}

// defaultNow matches the second granularity of SQL CURRENT_TIMESTAMP.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Init creates the history table when it does not exist. Safe to call on every start.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&entity.OperationRecord{}); err != nil {
		return &entity.StoreError{Kind: entity.WriteFailed, Op: "init", Err: err}
	}
	return nil
}

// Subscribe registers fn for post-commit notifications.
func (r *Repository) Subscribe(fn entity.HistorySubscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Insert appends record, assigning its ID and, when unset, its timestamp.
func (r *Repository) Insert(ctx context.Context, record *entity.OperationRecord) error {
	ctx, span := otel.Tracer(traceName).Start(ctx, "Insert")
	defer span.End()

	if record == nil {
		return &entity.StoreError{Kind: entity.WriteFailed, Op: "insert", Err: errors.New("nil record")}
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = r.now()
	}
	record.Timestamp = record.Timestamp.UTC()

	span.SetAttributes(attribute.String("operation", string(record.Operation)))
	span.SetAttributes(attribute.String("data_type", string(record.DataType)))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		span.RecordError(err)
		return &entity.StoreError{Kind: entity.WriteFailed, Op: "insert", Err: err}
	}

	r.l.Debug("history row %d inserted: %s %s", record.ID, record.Operation, record.Name)

	inserted := *record
	r.notify(entity.HistoryEvent{Type: entity.EventInserted, Record: &inserted, ID: inserted.ID, Timestamp: inserted.Timestamp, Affected: 1})
	return nil
}

// ListAll returns every record, newest first. Each call re-queries the store.
func (r *Repository) ListAll(ctx context.Context) ([]entity.OperationRecord, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "ListAll")
	defer span.End()

	var records []entity.OperationRecord
	if err := r.db.WithContext(ctx).Order("id desc").Find(&records).Error; err != nil {
		span.RecordError(err)
		return nil, &entity.StoreError{Kind: entity.ReadFailed, Op: "list", Err: err}
	}
	return records, nil
}

// DeleteByTimestamp removes every row stamped with ts. Rows sharing a timestamp are all
// removed; zero affected rows is not an error.
func (r *Repository) DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "DeleteByTimestamp")
	defer span.End()

	ts = ts.UTC()
	span.SetAttributes(attribute.String("timestamp", ts.Format(time.RFC3339Nano)))

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("timestamp = ?", ts).Delete(&entity.OperationRecord{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		span.RecordError(err)
		return 0, &entity.StoreError{Kind: entity.DeleteFailed, Op: "delete", Err: err}
	}

	if affected > 1 {
		r.l.Warn("history delete by timestamp %s removed %d rows", ts.Format(time.RFC3339), affected)
	}

	r.notify(entity.HistoryEvent{Type: entity.EventDeleted, Timestamp: ts, Affected: affected})
	return affected, nil
}

// DeleteByID removes the single row with the given synthetic key.
func (r *Repository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int("id", int(id)))

	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entity.OperationRecord{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		span.RecordError(err)
		return 0, &entity.StoreError{Kind: entity.DeleteFailed, Op: "delete", Err: err}
	}

	r.notify(entity.HistoryEvent{Type: entity.EventDeleted, ID: id, Affected: affected})
	return affected, nil
}

func (r *Repository) notify(ev entity.HistoryEvent) {
	ev.At = time.Now().UTC()

	r.mu.RLock()
	subscribers := make([]entity.HistorySubscriber, len(r.subscribers))
	copy(subscribers, r.subscribers)
	r.mu.RUnlock()

	for _, fn := range subscribers {
		fn(ev)
	}
}
