package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind -.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// Validation error kinds
	EmptyInput
	NoFileSelected
	UnsupportedFormat
	// Store error kinds
	WriteFailed
	ReadFailed
	DeleteFailed
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "empty_input"
	case NoFileSelected:
		return "no_file_selected"
	case UnsupportedFormat:
		return "unsupported_format"
	case WriteFailed:
		return "write_failed"
	case ReadFailed:
		return "read_failed"
	case DeleteFailed:
		return "delete_failed"
	default:
		return "unknown"
	}
}

// Validation sentinels. Match with errors.Is; the kind decides equality.
var (
	ErrEmptyInput        = &ValidationError{Kind: EmptyInput}
	ErrNoFileSelected    = &ValidationError{Kind: NoFileSelected}
	ErrUnsupportedFormat = &ValidationError{Kind: UnsupportedFormat}
)

// ErrOperationInProgress is returned by state changes attempted while an operation runs.
var ErrOperationInProgress = errors.New("operation in progress")

// ValidationError reports a rejected user input. It never changes controller state.
type ValidationError struct {
	Kind      ErrorKind
	Operation OperationKind
	Value     string
	// Formats lists the accepted extensions for UnsupportedFormat.
	Formats []string
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Kind {
	case EmptyInput:
		msg = "empty input"
	case NoFileSelected:
		msg = "no file selected"
	case UnsupportedFormat:
		msg = "unsupported file format"
	default:
		msg = "invalid input"
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: %s", msg, e.Value)
	}
	return msg
}

// Is -.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Title is the short heading shown to users.
func (e *ValidationError) Title() string {
	switch e.Kind {
	case EmptyInput:
		return "Empty Input"
	case NoFileSelected:
		return "No File Selected"
	case UnsupportedFormat:
		return "Unsupported File"
	default:
		return "Invalid Input"
	}
}

// Hint is the user-facing explanation.
func (e *ValidationError) Hint() string {
	verb := "compress"
	if e.Operation != "" {
		verb = strings.ToLower(string(e.Operation))
	}
	switch e.Kind {
	case EmptyInput:
		return "Please enter text to " + verb
	case NoFileSelected:
		return "Please select an image to " + verb
	case UnsupportedFormat:
		formats := make([]string, 0, len(e.Formats))
		for _, f := range e.Formats {
			formats = append(formats, strings.ToUpper(f))
		}
		return "This is not a recognized image format.\nSupported formats: " + strings.Join(formats, ", ") + "."
	default:
		return e.Error()
	}
}

// StoreError reports a history store failure. It is logged and surfaced, never fatal.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("history store %s: %v", e.Op, e.Err)
	}
	return "history store " + e.Op
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidationError -.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidationError -.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsStoreError -.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
