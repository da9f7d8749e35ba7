package compression

import (
	"arithma_tech/entity"
)

// StatusCode enumerates the status line vocabulary.
type StatusCode int

const (
	StatusReady StatusCode = iota
	StatusTextMode
	StatusFileMode
	StatusFileSelected
	StatusFileCleared
	StatusCompressing
	StatusDecompressing
	StatusCompressed
	StatusDecompressed
)

var statusNames = map[StatusCode]string{
	StatusReady:         "ready",
	StatusTextMode:      "text_mode",
	StatusFileMode:      "file_mode",
	StatusFileSelected:  "file_selected",
	StatusFileCleared:   "file_cleared",
	StatusCompressing:   "compressing",
	StatusDecompressing: "decompressing",
	StatusCompressed:    "compressed",
	StatusDecompressed:  "decompressed",
}

// Name is the machine readable code, used by the HTTP API.
func (c StatusCode) Name() string {
	if n, ok := statusNames[c]; ok {
		return n
	}
	return "unknown"
}

// Status is a status line update.
type Status struct {
	Code    StatusCode
	Mode    entity.InputMode
	Name    string
	Percent int
}

func (s Status) String() string {
	switch s.Code {
	case StatusReady:
		return "Ready to start..."
	case StatusTextMode:
		return "Text input mode selected"
	case StatusFileMode:
		return "File input mode selected"
	case StatusFileSelected:
		return "File selected: " + s.Name
	case StatusFileCleared:
		return "File selection cleared"
	case StatusCompressing:
		if s.Mode == entity.ModeText {
			return "Compressing text..."
		}
		return "Compressing: " + s.Name
	case StatusDecompressing:
		if s.Mode == entity.ModeText {
			return "Decompressing text..."
		}
		return "Decompressing: " + s.Name
	case StatusCompressed:
		return "Compression completed successfully"
	case StatusDecompressed:
		return "Decompression completed successfully"
	default:
		return ""
	}
}

// Confirmation is the message shown once an operation completes. Empty otherwise.
func (s Status) Confirmation() string {
	subject := "image"
	if s.Mode == entity.ModeText {
		subject = "text"
	}
	switch s.Code {
	case StatusCompressed:
		return "Your " + subject + " has been compressed successfully!"
	case StatusDecompressed:
		return "Your " + subject + " has been decompressed successfully!"
	default:
		return ""
	}
}

// Running reports whether the status belongs to an in-flight operation.
func (s Status) Running() bool {
	return s.Code == StatusCompressing || s.Code == StatusDecompressing
}

func runningStatus(kind entity.OperationKind) StatusCode {
	if kind == entity.Decompress {
		return StatusDecompressing
	}
	return StatusCompressing
}

func completedStatus(kind entity.OperationKind) StatusCode {
	if kind == entity.Decompress {
		return StatusDecompressed
	}
	return StatusCompressed
}
