package compression

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultFormats are the image extensions accepted in file mode.
var DefaultFormats = []string{"png", "jpg", "jpeg", "bmp", "gif"}

// FormatMatcher accepts file names by extension, ignoring case.
type FormatMatcher struct {
	formats []string
	pattern glob.Glob
}

// NewFormatMatcher compiles the extension list. Leading dots and case are ignored.
func NewFormatMatcher(formats []string) (*FormatMatcher, error) {
	normalized := make([]string, 0, len(formats))
	seen := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		normalized = append(normalized, f)
	}
	if len(normalized) == 0 {
		return nil, fmt.Errorf("no file formats given")
	}

	g, err := glob.Compile("*.{" + strings.Join(normalized, ",") + "}")
	if err != nil {
		return nil, fmt.Errorf("compile format pattern: %w", err)
	}

	return &FormatMatcher{formats: normalized, pattern: g}, nil
}

// MustFormatMatcher panics on an invalid list. Use with constant input only.
func MustFormatMatcher(formats []string) *FormatMatcher {
	m, err := NewFormatMatcher(formats)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether path has an accepted extension.
func (m *FormatMatcher) Match(path string) bool {
	return m.pattern.Match(strings.ToLower(filepath.Base(path)))
}

// Formats returns a copy of the accepted extensions.
func (m *FormatMatcher) Formats() []string {
	return append([]string(nil), m.formats...)
}

// Describe -.
func (m *FormatMatcher) Describe() string {
	upper := make([]string, 0, len(m.formats))
	for _, f := range m.formats {
		upper = append(upper, strings.ToUpper(f))
	}
	return strings.Join(upper, ", ")
}
