package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeLog creates a daily log in a temp dir and returns the dir.
func writeLog(t *testing.T, date time.Time, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, date.Format(DefaultLayout))
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseLine_Fields(t *testing.T) {
	s, err := ParseLine("1311169041 | 1.016 | explorer.exe | data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Timestamp != "1311169041" {
		t.Errorf("Timestamp = %q, want 1311169041", s.Timestamp)
	}
	if s.IdleSeconds != 1.016 {
		t.Errorf("IdleSeconds = %v, want 1.016", s.IdleSeconds)
	}
	if s.ProcessName != "explorer.exe" {
		t.Errorf("ProcessName = %q, want explorer.exe", s.ProcessName)
	}
	if s.Title != "data" {
		t.Errorf("Title = %q, want data", s.Title)
	}
}

func TestParseLine_TitleKeepsSeparator(t *testing.T) {
	s, err := ParseLine("100 | 0.5 | chrome.exe | Inbox | Mail | Search")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Inbox | Mail | Search" {
		t.Errorf("Title = %q, want the rest of the line", s.Title)
	}
}

func TestParseLine_TrimsCarriageReturn(t *testing.T) {
	s, err := ParseLine("100 | 2 | a.exe | A\r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "A" {
		t.Errorf("Title = %q, want A", s.Title)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "100 | 0.0 | a.exe"},
		{"no separators", "garbage"},
		{"empty", ""},
		{"idle not numeric", "100 | abc | a.exe | A"},
		{"idle negative", "100 | -1 | a.exe | A"},
		{"idle NaN", "100 | NaN | a.exe | A"},
		{"idle infinite", "100 | +Inf | a.exe | A"},
		{"separator without spaces", "100|0.0|a.exe|A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			if err == nil {
				t.Fatalf("ParseLine(%q) succeeded, want error", tt.line)
			}
			if !errors.Is(err, ErrMalformedLine) {
				t.Errorf("error %v does not wrap ErrMalformedLine", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %v is not a *ParseError", err)
			}
		})
	}
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Line: 3, Text: "x", Reason: "bad"}
	if got, want := err.Error(), `line 3: bad: "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err.Line = 0
	if got, want := err.Error(), `bad: "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDailyLogs_Locate(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local)
	dir := writeLog(t, day, "1 | 0 | a.exe | A")
	logs := DailyLogs{Dir: dir}

	path, found, err := logs.Locate(day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected log to be found")
	}
	if want := filepath.Join(dir, "2024-03-10.log"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	_, found, err = logs.Locate(day.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("absent day returned error: %v", err)
	}
	if found {
		t.Error("absent day reported as found")
	}
}

func TestDailyLogs_CustomLayout(t *testing.T) {
	logs := DailyLogs{Dir: "/var/log/watcher", Layout: "entries-20060102.txt"}
	got := logs.Path(time.Date(2011, 7, 20, 0, 0, 0, 0, time.UTC))
	if want := filepath.Join("/var/log/watcher", "entries-20110720.txt"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2024-03-09.log", "2024-03-11.log", "notes.txt", "2024-03-10.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "2024-03-12.log"), 0o755); err != nil {
		t.Fatal(err)
	}

	logs, err := ScanDir(dir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("found %d logs, want 3", len(logs))
	}
	wantDays := []int{11, 10, 9}
	for i, l := range logs {
		if l.Date.Day() != wantDays[i] {
			t.Errorf("logs[%d].Date = %v, want day %d", i, l.Date, wantDays[i])
		}
	}
}

func TestScanDir_MissingDir(t *testing.T) {
	logs, err := ScanDir(filepath.Join(t.TempDir(), "nope"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("found %d logs in a missing dir", len(logs))
	}
}

// FuzzParseLine checks the parser never panics and that accepted lines
// always yield a non-negative idle time.
func FuzzParseLine(f *testing.F) {
	f.Add("1311169041 | 1.016 | explorer.exe | data")
	f.Add("100 | 0.0 | a.exe | A | B")
	f.Add("100 | 1e3 | | ")
	f.Add(" |  |  | ")
	f.Add("not a line")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		s, err := ParseLine(line)
		if err != nil {
			if !errors.Is(err, ErrMalformedLine) {
				t.Errorf("unexpected error type %T for %q", err, line)
			}
			return
		}
		if s.IdleSeconds < 0 {
			t.Errorf("negative idle %v accepted from %q", s.IdleSeconds, line)
		}
	})
}
