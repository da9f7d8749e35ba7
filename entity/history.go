package entity

import (
	"context"
	"time"
)

// HistoryRepository is the persistent log of attempted operations.
type HistoryRepository interface {
	Insert(ctx context.Context, record *OperationRecord) error
	ListAll(ctx context.Context) ([]OperationRecord, error)
	DeleteByTimestamp(ctx context.Context, ts time.Time) (int64, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

// HistoryEventType -.
type HistoryEventType string

const (
	EventInserted HistoryEventType = "inserted"
	EventDeleted  HistoryEventType = "deleted"
)

// HistoryEvent is delivered to subscribers after a write has committed.
type HistoryEvent struct {
	Type      HistoryEventType `json:"type"`
	Record    *OperationRecord `json:"record,omitempty"`
	ID        uint             `json:"id,omitempty"`
	Timestamp time.Time        `json:"timestamp,omitempty"`
	Affected  int64            `json:"affected"`
	At        time.Time        `json:"at"`
}

// HistorySubscriber -.
type HistorySubscriber func(HistoryEvent)
