// Package monconf rewrites monitor records in Hyprland-style monitor
// config files.
//
// A monitor record is a line of the form
//
//	monitor = NAME, RESOLUTION, POSITION, SCALE[, EXTRA...]
//
// Updates rewrite the first record matching a monitor name and leave every
// other line byte for byte untouched, so hand-written comments, spacing and
// unrelated directives survive. Files are replaced atomically.
package monconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
)

// introducer is the keyword that starts a monitor record.
const introducer = "monitor"

// Store reads and rewrites one monitors config file.
type Store struct {
	path string
}

// New returns a Store for the given config file path. The file does not
// have to exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Update sets the scale field of the first record whose name matches
// monitor name, preserving the record's resolution, position and any extra
// trailing fields. When no record matches, a new one with "preferred"
// resolution and "auto" position is appended. A missing file is treated as
// empty and created.
//
// Only the first matching record is touched. Later duplicates pass through
// unchanged so the file stays recognizable; cleaning them up is left to the
// user.
//
// The rewrite is atomic: content goes to a temp file in the target
// directory which then replaces the original, so a crash or write error
// never leaves a half-written config behind.
func (s *Store) Update(name, newScale string) error {
	content, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read monitors config: %w", err)
	}

	// Splitting on \n keeps any \r with its line and round-trips the
	// trailing-newline state: joining with \n restores the exact bytes.
	lines := strings.Split(string(content), "\n")

	replaced := false
	for i, line := range lines {
		fields, ok := parseRecord(line)
		if !ok || len(fields) == 0 || fields[0] != name {
			continue
		}
		lines[i] = formatRecord(fields, newScale)
		replaced = true
		break
	}

	if !replaced {
		record := formatRecord([]string{name}, newScale)
		switch {
		case len(lines) == 1 && lines[0] == "":
			// Empty or missing file.
			lines = []string{record, ""}
		case lines[len(lines)-1] == "":
			// File ends with a newline: slot the record in before it.
			lines[len(lines)-1] = record
			lines = append(lines, "")
		default:
			// No trailing newline on the last line: add one, then the record.
			lines = append(lines, record, "")
		}
	}

	return s.write(strings.Join(lines, "\n"))
}

func (s *Store) write(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	t, err := renameio.TempFile(dir, s.path)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer t.Cleanup()

	if _, err := t.WriteString(content); err != nil {
		return fmt.Errorf("failed to write monitors config: %w", err)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace monitors config: %w", err)
	}
	return nil
}

// parseRecord reports whether a line is a monitor record and returns its
// comma-separated fields, space-trimmed, with any inline comment stripped.
func parseRecord(line string) ([]string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), introducer)
	if !ok {
		return nil, false
	}
	rest = strings.TrimLeft(rest, " \t")
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		// Some other directive, e.g. monitorv2.
		return nil, false
	}
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	fields := strings.Split(rest, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, true
}

// formatRecord renders the canonical record line for a monitor, keeping the
// parsed resolution, position and extra fields and substituting the scale.
// Missing or empty resolution and position fields fall back to the
// compositor defaults. Inline comments are not carried over.
func formatRecord(fields []string, newScale string) string {
	resolution := "preferred"
	if len(fields) > 1 && fields[1] != "" {
		resolution = fields[1]
	}
	position := "auto"
	if len(fields) > 2 && fields[2] != "" {
		position = fields[2]
	}

	out := []string{fields[0], resolution, position, newScale}
	if len(fields) > 4 {
		out = append(out, fields[4:]...)
	}
	return introducer + " = " + strings.Join(out, ", ")
}
