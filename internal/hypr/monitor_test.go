package hypr

import "testing"

// TestRule_PinsCurrentMode tests that the apply rule carries the monitor's
// physical mode and position with the requested scale.
func TestRule_PinsCurrentMode(t *testing.T) {
	m := Monitor{
		Name:        "DP-1",
		Width:       3840,
		Height:      2160,
		RefreshRate: 59.997,
		X:           0,
		Y:           0,
	}

	if got, want := m.Rule("1.25"), "DP-1,3840x2160@59.997,0x0,1.25"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestRule_TrimsRefreshRate tests that whole refresh rates lose their
// trailing zeros in the rule.
func TestRule_TrimsRefreshRate(t *testing.T) {
	m := Monitor{
		Name:        "HDMI-A-1",
		Width:       1920,
		Height:      1080,
		RefreshRate: 60.0,
		X:           1920,
		Y:           480,
	}

	if got, want := m.Rule("1"), "HDMI-A-1,1920x1080@60,1920x480,1"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestLogicalSize tests the logical dimensions at the current scale.
func TestLogicalSize(t *testing.T) {
	m := Monitor{Width: 3840, Height: 2160, Scale: 1.25}

	if got := m.LogicalWidth(); got != 3072 {
		t.Errorf("expected logical width 3072, got %d", got)
	}
	if got := m.LogicalHeight(); got != 1728 {
		t.Errorf("expected logical height 1728, got %d", got)
	}
}
