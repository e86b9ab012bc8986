// Package source locates and parses the daily activity logs written by the sampling daemon.
package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/boppreh/activity/internal/model"
)

// ParseLine decodes one log line of the form
//
//	<timestamp> | <idle seconds> | <process name> | <window title>
//
// Splitting stops after the third separator, so the title may itself
// contain " | ".
func ParseLine(line string) (model.Sample, error) {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.SplitN(line, FieldSeparator, fieldCount)
	if len(parts) != fieldCount {
		return model.Sample{}, &ParseError{
			Text:   line,
			Reason: "expected " + strconv.Itoa(fieldCount) + " fields, got " + strconv.Itoa(len(parts)),
		}
	}

	idle, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.Sample{}, &ParseError{Text: line, Reason: "idle time is not a number"}
	}
	if math.IsNaN(idle) || math.IsInf(idle, 0) {
		return model.Sample{}, &ParseError{Text: line, Reason: "idle time is not finite"}
	}
	if idle < 0 {
		return model.Sample{}, &ParseError{Text: line, Reason: "idle time is negative"}
	}

	return model.Sample{
		Timestamp:   parts[0],
		IdleSeconds: idle,
		ProcessName: parts[2],
		Title:       parts[3],
	}, nil
}
