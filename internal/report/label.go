package report

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxLabelLength is the display width process labels are cut to.
const DefaultMaxLabelLength = 15

const ellipsis = "..."

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// FormatProcessName turns an executable name into a readable label:
// "sublime_text-2-x64.exe" becomes "Sublime Text 2 X64", then is cut to
// maxWidth columns with a trailing "..." when longer.
func FormatProcessName(name string, maxWidth int) string {
	if ext := filepath.Ext(name); ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	name = separatorReplacer.Replace(name)
	name = titleWords(name)

	return TruncateLabel(name, maxWidth)
}

// titleWords title-cases every run of cased letters, so any non-letter
// starts a new word: "o'neil" becomes "O'Neil", "app2go" becomes "App2Go".
func titleWords(s string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for s != "" {
		i := strings.IndexFunc(s, isCased)
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]

		j := strings.IndexFunc(s, func(r rune) bool { return !isCased(r) })
		if j < 0 {
			j = len(s)
		}
		b.WriteString(caser.String(s[:j]))
		s = s[j:]
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// TruncateLabel cuts label to maxWidth display columns, ending in "..."
// when anything was removed. maxWidth <= 0 disables truncation.
func TruncateLabel(label string, maxWidth int) string {
	if maxWidth <= 0 {
		return label
	}
	return runewidth.Truncate(label, maxWidth, ellipsis)
}
