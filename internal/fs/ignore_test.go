package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewIgnoreMatcher(t *testing.T) {
	t.Run("skips blank lines and comments", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"", "  ", "# comment", "*.part.rar"})
		if m.Len() != 1 {
			t.Fatalf("expected 1 pattern, got %d", m.Len())
		}
		if m.patterns[0].pattern != "*.part.rar" {
			t.Errorf("expected *.part.rar, got %s", m.patterns[0].pattern)
		}
	})

	t.Run("classifies path vs basename patterns", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"*.cab", "old/backup.zip"})
		if m.patterns[0].matchPath {
			t.Error("*.cab should not be a path pattern")
		}
		if !m.patterns[1].matchPath {
			t.Error("old/backup.zip should be a path pattern")
		}
	})

	t.Run("merges several pattern sets", func(t *testing.T) {
		t.Parallel()
		m := NewIgnoreMatcher([]string{"*.cab"}, nil, []string{"# only a comment", "*.zoo"})
		if m.Len() != 2 {
			t.Fatalf("expected 2 patterns, got %d", m.Len())
		}
	})
}

func TestIgnoreMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		entry    string
		want     bool
	}{
		{"basename glob matches", []string{"*.part*.rar"}, "movie.part01.rar", true},
		{"basename glob matches nested name", []string{"*.cab"}, filepath.Join("sub", "driver.cab"), true},
		{"different extension is kept", []string{"*.cab"}, "driver.zip", false},
		{"exact basename match", []string{"backup.tar"}, "backup.tar", true},
		{"path pattern matches exact relative name", []string{"old/backup.zip"}, filepath.Join("old", "backup.zip"), true},
		{"path pattern does not match bare name", []string{"old/backup.zip"}, "backup.zip", false},
		{"question mark wildcard", []string{"?.tar"}, "a.tar", true},
		{"question mark does not match multiple chars", []string{"?.tar"}, "ab.tar", false},
		{"character class", []string{"*.t[ab]z"}, "src.tbz", true},
		{"malformed pattern never matches", []string{"[.zip"}, "[.zip", false},
		{"no patterns matches nothing", nil, "anything.zip", false},
		{"empty name", []string{"*"}, "", false},
		{"second pattern matches", []string{"*.rar", "*.zoo"}, "legacy.zoo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewIgnoreMatcher(tt.patterns)
			if got := m.Match(tt.entry); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestParseIgnoreFile(t *testing.T) {
	t.Run("reads patterns from file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "ignore")
		content := "*.cab\n# comment\n\n*.part*.rar\nold/backup.zip\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}

		lines, err := ParseIgnoreFile(path)
		if err != nil {
			t.Fatalf("ParseIgnoreFile() error = %v", err)
		}
		if len(lines) != 5 { // blank and comment lines are filtered by NewIgnoreMatcher
			t.Fatalf("expected 5 raw lines, got %d", len(lines))
		}
		if m := NewIgnoreMatcher(lines); m.Len() != 3 {
			t.Errorf("expected 3 parsed patterns, got %d", m.Len())
		}
	})

	t.Run("returns nil for missing file", func(t *testing.T) {
		t.Parallel()
		lines, err := ParseIgnoreFile("/nonexistent/archie/ignore")
		if err != nil {
			t.Fatalf("ParseIgnoreFile() error = %v", err)
		}
		if lines != nil {
			t.Errorf("expected nil lines, got %v", lines)
		}
	})
}
