package report

import (
	"bytes"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/activity/internal/model"
)

func column(pairs ...string) iter.Seq[model.SummaryEntry] {
	var es []model.SummaryEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		es = append(es, model.SummaryEntry{Label: pairs[i], Time: pairs[i+1]})
	}
	return slices.Values(es)
}

func TestFormatCell(t *testing.T) {
	e := model.SummaryEntry{Label: "Vim", Time: "50%"}
	assert.Equal(t, "Vim   50%", FormatCell(e, 5))
	assert.Equal(t, "Vim 50%", FormatCell(e, 0))

	long := model.SummaryEntry{Label: "Total (12 entries)", Time: "100%"}
	assert.Equal(t, "Total (12 entries) 100%", FormatCell(long, 15))
}

func TestRenderString_Columns(t *testing.T) {
	layout := Layout{TableWidth: 40, LabelWidth: 5}
	got := RenderString(layout,
		[]string{"Today", "Yesterday"},
		[]iter.Seq[model.SummaryEntry]{
			column("Total", "100%", "Vim", "50%"),
			column("Total", "100%"),
		})

	sp := strings.Repeat
	want := sp(" ", 7) + "Today" + sp(" ", 8) + sp(" ", 5) + "Yesterday" + sp(" ", 6) + "\n" +
		"\n" +
		sp(" ", 5) + "Total 100%" + sp(" ", 5) + sp(" ", 5) + "Total 100%" + sp(" ", 5) + "\n" +
		sp(" ", 5) + "Vim   50%" + sp(" ", 6) + sp(" ", 20) + "\n"

	assert.Equal(t, want, got)
}

func TestRenderString_RowCountIsLongestColumn(t *testing.T) {
	layout := Layout{TableWidth: 78, LabelWidth: 15}
	got := RenderString(layout,
		[]string{"A", "B", "C"},
		[]iter.Seq[model.SummaryEntry]{
			column("x", "1%"),
			column("x", "1%", "y", "2%", "z", "3%"),
			column(),
		})

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 5, "header, blank, three rows")
	assert.Empty(t, lines[1])
	for _, line := range lines[2:] {
		assert.Len(t, line, 78)
	}
	assert.Equal(t, strings.Repeat(" ", 26), lines[4][:26], "exhausted column is blank")
}

func TestRenderString_WideCellNotTruncated(t *testing.T) {
	layout := Layout{TableWidth: 10, LabelWidth: 5}
	got := RenderString(layout, []string{"H"}, []iter.Seq[model.SummaryEntry]{
		column("Total (3 entries)", "100% -  1:00"),
	})
	assert.Contains(t, got, "Total (3 entries) 100% -  1:00\n")
}

func TestRenderString_HeaderStyle(t *testing.T) {
	layout := Layout{
		TableWidth:  20,
		LabelWidth:  3,
		HeaderStyle: func(s ...string) string { return "<" + strings.Join(s, "") + ">" },
	}
	got := RenderString(layout, []string{"A", "B"}, []iter.Seq[model.SummaryEntry]{
		column("x", "1%"),
		column("y", "2%"),
	})

	header, _, _ := strings.Cut(got, "\n")
	assert.Equal(t, "<    A     ><    B     >", header)
}

func TestRenderString_NoColumns(t *testing.T) {
	assert.Empty(t, RenderString(Layout{TableWidth: 80}, nil, nil))
}

func TestRender_FromSummaries(t *testing.T) {
	b := processBuilder()
	today := b.Build([]model.DailyTally{day(model.Tally{"a.exe": 1})})
	empty := b.Build(nil)

	var buf bytes.Buffer
	err := Render(&buf, Layout{TableWidth: 80, LabelWidth: 15},
		[]string{"Today", "Yesterday"},
		[]iter.Seq[model.SummaryEntry]{today.Entries(), empty.Entries()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total (1 entries) 100% -  0:01")
	assert.Contains(t, out, "Total (0 entries) 100%")
	assert.Contains(t, out, "A               100% -  0:01")
}
