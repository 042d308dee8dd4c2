package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ignorePattern is a parsed ignore pattern with its matching strategy.
type ignorePattern struct {
	pattern   string
	matchPath bool // true = match against the whole name; false = match against basename only
}

// IgnoreMatcher decides which archives extract-all skips.
// Patterns without '/' match against the entry's basename only.
// Patterns with '/' match against the full name as given to Match.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings.
// Blank lines and lines starting with '#' are skipped.
func NewIgnoreMatcher(rawPatterns ...[]string) *IgnoreMatcher {
	var patterns []ignorePattern
	for _, set := range rawPatterns {
		for _, raw := range set {
			raw = strings.TrimSpace(raw)
			if raw == "" || strings.HasPrefix(raw, "#") {
				continue
			}
			patterns = append(patterns, ignorePattern{
				pattern:   raw,
				matchPath: strings.Contains(raw, "/"),
			})
		}
	}
	return &IgnoreMatcher{patterns: patterns}
}

// Len returns the number of active patterns.
func (m *IgnoreMatcher) Len() int {
	return len(m.patterns)
}

// Match reports whether name should be skipped.
func (m *IgnoreMatcher) Match(name string) bool {
	if name == "" || len(m.patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(name)
	basename := filepath.Base(name)

	for _, p := range m.patterns {
		target := basename
		if p.matchPath {
			target = normalized
		}
		// filepath.Match only fails on malformed patterns; those never match.
		if matched, err := filepath.Match(p.pattern, target); err == nil && matched {
			return true
		}
	}
	return false
}

// ParseIgnoreFile reads an ignore file and returns its raw lines.
// Returns nil and no error if the file does not exist.
func ParseIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return lines, nil
}
