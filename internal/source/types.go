package source

import (
	"errors"
	"fmt"
	"time"
)

// FieldSeparator separates the fields of a daemon log line.
const FieldSeparator = " | "

// fieldCount is the number of fields on a log line:
// timestamp, idle seconds, process name and window title.
const fieldCount = 4

// ErrMalformedLine is wrapped by every line parse failure.
var ErrMalformedLine = errors.New("malformed log line")

// ParseError describes a log line that could not be decoded.
type ParseError struct {
	Line   int // 1-based; 0 when unknown
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedLine.
func (e *ParseError) Unwrap() error {
	return ErrMalformedLine
}

// DiscoveredLog represents a daily log file found during directory scanning.
type DiscoveredLog struct {
	Path string
	Date time.Time
}
