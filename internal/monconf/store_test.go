package monconf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monitors.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(path)
}

func readBack(t *testing.T, s *Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// TestUpdate_RewritesOnlyTargetRecord tests that updating one monitor's
// scale leaves every other line byte for byte intact.
func TestUpdate_RewritesOnlyTargetRecord(t *testing.T) {
	s := writeFixture(t, `# monitor layout
monitor=DP-1,1920x1080@144,0x0,1
monitor=HDMI-1, 2560x1440@60, 1920x0, 1.5, transform, 1

input {
    kb_layout = us
}
`)

	if err := s.Update("DP-1", "1.25"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := `# monitor layout
monitor = DP-1, 1920x1080@144, 0x0, 1.25
monitor=HDMI-1, 2560x1440@60, 1920x0, 1.5, transform, 1

input {
    kb_layout = us
}
`
	if got := readBack(t, s); got != want {
		t.Errorf("unexpected file content:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestUpdate_PreservesExtraFields tests that fields beyond the scale are
// carried over in order.
func TestUpdate_PreservesExtraFields(t *testing.T) {
	s := writeFixture(t, "monitor=DP-1,2560x1440@165,0x0,1,mirror,DP-2,bitdepth,10\n")

	if err := s.Update("DP-1", "1.5"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := "monitor = DP-1, 2560x1440@165, 0x0, 1.5, mirror, DP-2, bitdepth, 10\n"
	if got := readBack(t, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestUpdate_AppendsWhenAbsent tests that an unknown monitor gets a fresh
// record with default resolution and position.
func TestUpdate_AppendsWhenAbsent(t *testing.T) {
	s := writeFixture(t, "monitor=DP-1,1920x1080@60,0x0,1\n")

	if err := s.Update("DP-3", "1.25"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := "monitor=DP-1,1920x1080@60,0x0,1\nmonitor = DP-3, preferred, auto, 1.25\n"
	if got := readBack(t, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestUpdate_MissingFileCreatesRecord tests that a missing config file, in
// a missing directory, is created with just the new record.
func TestUpdate_MissingFileCreatesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypr", "monitors.conf")
	s := New(path)

	if err := s.Update("eDP-1", "2"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := "monitor = eDP-1, preferred, auto, 2\n"
	if got := readBack(t, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestUpdate_FirstMatchWins tests that duplicate records for the same
// monitor leave all but the first untouched.
func TestUpdate_FirstMatchWins(t *testing.T) {
	s := writeFixture(t, `monitor=DP-1,1920x1080@60,0x0,1
monitor=DP-1,1920x1080@60,0x0,2
`)

	if err := s.Update("DP-1", "1.5"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := `monitor = DP-1, 1920x1080@60, 0x0, 1.5
monitor=DP-1,1920x1080@60,0x0,2
`
	if got := readBack(t, s); got != want {
		t.Errorf("expected duplicate to pass through untouched:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestUpdate_StripsInlineComment tests that an inline comment on the target
// record is not carried into the rewritten line, while standalone comment
// lines survive.
func TestUpdate_StripsInlineComment(t *testing.T) {
	s := writeFixture(t, `# left panel
monitor = DP-1, 1920x1080@60, 0x0, 1 # primary panel
`)

	if err := s.Update("DP-1", "1.25"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := `# left panel
monitor = DP-1, 1920x1080@60, 0x0, 1.25
`
	if got := readBack(t, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestUpdate_Idempotent tests that re-applying the same update leaves the
// file byte for byte identical.
func TestUpdate_Idempotent(t *testing.T) {
	s := writeFixture(t, "  monitor=DP-1 , 1920x1080@60 ,0x0, 1\nmisc = vfr=true\n")

	if err := s.Update("DP-1", "1.25"); err != nil {
		t.Fatalf("first Update failed: %v", err)
	}
	first := readBack(t, s)

	if err := s.Update("DP-1", "1.25"); err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	second := readBack(t, s)

	if first != second {
		t.Errorf("second update changed the file:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if first != "monitor = DP-1, 1920x1080@60, 0x0, 1.25\nmisc = vfr=true\n" {
		t.Errorf("unexpected canonical form: %q", first)
	}
}

// TestUpdate_NoTrailingNewline tests appending to a file whose last line is
// not newline-terminated.
func TestUpdate_NoTrailingNewline(t *testing.T) {
	s := writeFixture(t, "misc = vfr=true")

	if err := s.Update("DP-1", "1"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := "misc = vfr=true\nmonitor = DP-1, preferred, auto, 1\n"
	if got := readBack(t, s); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestUpdate_DefaultsMissingFields tests that truncated or empty records
// pick up the preferred/auto defaults on rewrite.
func TestUpdate_DefaultsMissingFields(t *testing.T) {
	s := writeFixture(t, "monitor=DP-1\n")
	if err := s.Update("DP-1", "2"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := readBack(t, s); got != "monitor = DP-1, preferred, auto, 2\n" {
		t.Errorf("unexpected content: %q", got)
	}

	s = writeFixture(t, "monitor=DP-1,,,1\n")
	if err := s.Update("DP-1", "1.5"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := readBack(t, s); got != "monitor = DP-1, preferred, auto, 1.5\n" {
		t.Errorf("unexpected content: %q", got)
	}
}

// TestUpdate_IgnoresOtherDirectives tests that directives sharing the
// monitor prefix are not mistaken for records.
func TestUpdate_IgnoresOtherDirectives(t *testing.T) {
	s := writeFixture(t, `monitorv2 {
  output = DP-1
  mode = preferred
}
`)

	if err := s.Update("DP-1", "1.5"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := `monitorv2 {
  output = DP-1
  mode = preferred
}
monitor = DP-1, preferred, auto, 1.5
`
	if got := readBack(t, s); got != want {
		t.Errorf("expected monitorv2 block untouched and record appended:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestParseRecord tests record recognition and field splitting directly.
func TestParseRecord(t *testing.T) {
	fields, ok := parseRecord("monitor=DP-1, 1920x1080@60 ,0x0,1 # main")
	if !ok {
		t.Fatal("expected a record")
	}
	want := []string{"DP-1", "1920x1080@60", "0x0", "1"}
	if len(fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], fields[i])
		}
	}

	for _, line := range []string{
		"monitors = DP-1,preferred,auto,1",
		"monitorv2 {",
		"# monitor = DP-1,preferred,auto,1",
		"workspace = 1, monitor:DP-1",
		"",
	} {
		if _, ok := parseRecord(line); ok {
			t.Errorf("expected %q not to parse as a record", line)
		}
	}
}
