package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOperationRecordText(t *testing.T) {
	rec := NewOperationRecord(Selection{Mode: ModeText, Text: "hello"}, Compress)

	assert.Equal(t, "Text Data", rec.Name)
	assert.Equal(t, Compress, rec.Operation)
	assert.Equal(t, DataText, rec.DataType)
	assert.Empty(t, rec.FilePath)
	assert.Equal(t, "hello", rec.TextContent)
	assert.True(t, rec.Timestamp.IsZero())
}

func TestNewOperationRecordFile(t *testing.T) {
	rec := NewOperationRecord(Selection{Mode: ModeFile, FilePath: "/tmp/photo.JPG", Text: "stale"}, Decompress)

	assert.Equal(t, "photo.JPG", rec.Name)
	assert.Equal(t, Decompress, rec.Operation)
	assert.Equal(t, DataFile, rec.DataType)
	assert.Equal(t, "/tmp/photo.JPG", rec.FilePath)
	assert.Empty(t, rec.TextContent)
}

func TestSelectionEmpty(t *testing.T) {
	assert.True(t, Selection{Mode: ModeText}.Empty())
	assert.False(t, Selection{Mode: ModeText, Text: " "}.Empty())
	assert.True(t, Selection{Mode: ModeFile, Text: "x"}.Empty())
	assert.False(t, Selection{Mode: ModeFile, FilePath: "a.png"}.Empty())
}

func TestParseHelpers(t *testing.T) {
	m, err := ParseInputMode("FILE")
	assert.NoError(t, err)
	assert.Equal(t, ModeFile, m)

	_, err = ParseInputMode("audio")
	assert.Error(t, err)

	k, err := ParseOperationKind("decompress")
	assert.NoError(t, err)
	assert.Equal(t, Decompress, k)

	_, err = ParseOperationKind("encode")
	assert.Error(t, err)
}

func TestValidationErrorMatching(t *testing.T) {
	err := fmt.Errorf("request: %w", &ValidationError{Kind: EmptyInput, Operation: Decompress})

	assert.True(t, errors.Is(err, ErrEmptyInput))
	assert.False(t, errors.Is(err, ErrNoFileSelected))
	assert.True(t, IsValidationError(err))

	ve := AsValidationError(err)
	if assert.NotNil(t, ve) {
		assert.Equal(t, "Empty Input", ve.Title())
		assert.Equal(t, "Please enter text to decompress", ve.Hint())
	}
}

func TestUnsupportedFormatHint(t *testing.T) {
	ve := &ValidationError{Kind: UnsupportedFormat, Value: "notes.txt", Formats: []string{"png", "jpg"}}

	assert.Equal(t, "unsupported file format: notes.txt", ve.Error())
	assert.Equal(t, "Unsupported File", ve.Title())
	assert.Equal(t, "This is not a recognized image format.\nSupported formats: PNG, JPG.", ve.Hint())
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := &StoreError{Kind: WriteFailed, Op: "insert", Err: cause}

	assert.Equal(t, "history store insert: database is locked", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStoreError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, IsStoreError(cause))
}
