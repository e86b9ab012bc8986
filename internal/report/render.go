package report

import (
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/boppreh/activity/internal/model"
)

// DefaultTableWidth is the total width of the rendered report.
const DefaultTableWidth = 80

// Layout controls the column report geometry.
type Layout struct {
	TableWidth int // split evenly between the columns
	LabelWidth int // labels are left-justified to this many columns

	// HeaderStyle, when set, decorates each centered header cell.
	HeaderStyle func(...string) string
}

// FormatCell renders an entry as "<label padded to width> <time>".
func FormatCell(e model.SummaryEntry, labelWidth int) string {
	return runewidth.FillRight(e.Label, labelWidth) + " " + e.Time
}

// Render writes the header row, a blank line and then one row per entry
// index, with column i showing the entries of columns[i]. Columns that run
// out of entries leave their cells blank.
func Render(w io.Writer, layout Layout, headers []string, columns []iter.Seq[model.SummaryEntry]) error {
	_, err := io.WriteString(w, RenderString(layout, headers, columns))
	return err
}

// RenderString is Render into a string.
func RenderString(layout Layout, headers []string, columns []iter.Seq[model.SummaryEntry]) string {
	n := len(columns)
	if len(headers) > n {
		n = len(headers)
	}
	if n == 0 {
		return ""
	}
	colWidth := layout.TableWidth / n

	var b strings.Builder
	for i := 0; i < n; i++ {
		header := ""
		if i < len(headers) {
			header = headers[i]
		}
		cell := center(header, colWidth)
		if layout.HeaderStyle != nil {
			cell = layout.HeaderStyle(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n\n")

	nexts := make([]func() (model.SummaryEntry, bool), len(columns))
	for i, col := range columns {
		next, stop := iter.Pull(col)
		defer stop()
		nexts[i] = next
	}

	cells := make([]string, n)
	for {
		more := false
		for i := range cells {
			cells[i] = ""
			if i >= len(nexts) || nexts[i] == nil {
				continue
			}
			e, ok := nexts[i]()
			if !ok {
				nexts[i] = nil
				continue
			}
			cells[i] = FormatCell(e, layout.LabelWidth)
			more = true
		}
		if !more {
			break
		}
		for _, cell := range cells {
			b.WriteString(center(cell, colWidth))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// center pads s on both sides to width, the extra column going right.
// Text wider than width is returned unchanged.
func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
