package entity

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// InputMode is the kind of input staged for the next operation.
type InputMode int

const (
	ModeText InputMode = iota
	ModeFile
)

func (m InputMode) String() string {
	switch m {
	case ModeText:
		return "Text"
	case ModeFile:
		return "File"
	default:
		return "Unknown"
	}
}

// DataType reports the record data type written for this mode.
func (m InputMode) DataType() DataType {
	if m == ModeText {
		return DataText
	}
	return DataFile
}

// ParseInputMode accepts "text" or "file" in any case.
func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText, nil
	case "file":
		return ModeFile, nil
	default:
		return ModeText, fmt.Errorf("unknown input mode %q", s)
	}
}

// OperationKind -.
type OperationKind string

const (
	Compress   OperationKind = "Compress"
	Decompress OperationKind = "Decompress"
)

// ParseOperationKind accepts "compress" or "decompress" in any case.
func ParseOperationKind(s string) (OperationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compress":
		return Compress, nil
	case "decompress":
		return Decompress, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// DataType -.
type DataType string

const (
	DataText DataType = "Text"
	DataFile DataType = "File"
)

// TextRecordName is the display name logged for every text operation.
const TextRecordName = "Text Data"

// Selection is the input staged for the next compress or decompress request.
type Selection struct {
	Mode     InputMode `json:"mode"`
	FilePath string    `json:"file_path,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// Empty reports whether the active mode has nothing to operate on.
func (s Selection) Empty() bool {
	if s.Mode == ModeText {
		return s.Text == ""
	}
	return s.FilePath == ""
}

// DisplayName -.
func (s Selection) DisplayName() string {
	if s.Mode == ModeText {
		return TextRecordName
	}
	return filepath.Base(s.FilePath)
}

// OperationRecord is one row of the operation history. Rows are never updated.
type OperationRecord struct {
	ID          uint          `gorm:"primaryKey;autoIncrement"   json:"id"           yaml:"id"`
	Name        string        `gorm:"column:name"                json:"name"         yaml:"name"`
	Operation   OperationKind `gorm:"column:operation"           json:"operation"    yaml:"operation"`
	DataType    DataType      `gorm:"column:data_type"           json:"data_type"    yaml:"data_type"`
	FilePath    string        `gorm:"column:file_path"           json:"file_path"    yaml:"file_path"`
	TextContent string        `gorm:"column:text_content"        json:"text_content" yaml:"text_content"`
	Timestamp   time.Time     `gorm:"column:timestamp;index"     json:"timestamp"    yaml:"timestamp"`
}

// TableName -.
func (OperationRecord) TableName() string {
	return "file_history"
}

// NewOperationRecord builds the history row for an accepted request. Timestamp is left
// zero so the store assigns it.
func NewOperationRecord(sel Selection, kind OperationKind) OperationRecord {
	rec := OperationRecord{
		Name:      sel.DisplayName(),
		Operation: kind,
		DataType:  sel.Mode.DataType(),
	}
	if sel.Mode == ModeText {
		rec.TextContent = sel.Text
	} else {
		rec.FilePath = sel.FilePath
	}
	return rec
}
