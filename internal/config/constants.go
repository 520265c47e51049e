// Package config provides configuration constants, user settings, and CLI
// flag overrides.
package config

import "time"

// =============================================================================
// Scale Negotiation Defaults
// =============================================================================

const (
	// DefaultMinLogicalWidth is the smallest logical width a negotiated
	// scale may produce. Anything narrower makes desktop UIs unusable.
	DefaultMinLogicalWidth = 640

	// DefaultMinLogicalHeight is the smallest logical height a negotiated
	// scale may produce.
	DefaultMinLogicalHeight = 480
)

// =============================================================================
// Timeouts and Delays
// =============================================================================

const (
	// RequestTimeout is the per-request deadline on the compositor socket
	RequestTimeout = 2 * time.Second

	// DefaultVerifyDelay is the pause between applying a scale and reading
	// the monitor state back to check what the compositor actually set
	DefaultVerifyDelay = 500 * time.Millisecond

	// DefaultNotifyTimeout is how long compositor notifications stay visible
	DefaultNotifyTimeout = 4 * time.Second
)

// =============================================================================
// File Locations (relative to the XDG config dir)
// =============================================================================

const (
	// UserConfigPath is the location of dusky's own config file
	UserConfigPath = "dusky/config.toml"

	// DefaultMonitorsPath is the monitors config file dusky rewrites when
	// apply.monitors_file is not set
	DefaultMonitorsPath = "hypr/monitors.conf"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// TargetMonitor is the monitor to operate on. Empty means the focused one.
// Set via --monitor command-line flag
var TargetMonitor = ""

// MonitorsFile is the resolved path of the monitors config file to rewrite.
// Set via --conf flag or apply.monitors_file config
var MonitorsFile = ""

// Ladder holds the user's candidate scale factors. Empty means the built-in
// ladder. Set via scale.ladder config
var Ladder []float64

// MinLogicalWidth is the smallest acceptable logical width
// Set via scale.min_logical_width config
var MinLogicalWidth = DefaultMinLogicalWidth

// MinLogicalHeight is the smallest acceptable logical height
// Set via scale.min_logical_height config
var MinLogicalHeight = DefaultMinLogicalHeight

// VerifyDelay is the wait before the post-apply verification read
// Set via apply.verify_delay_ms config
var VerifyDelay = DefaultVerifyDelay

// NotifyEnabled controls whether dusky pops compositor notifications
// Set via --no-notify flag or notify.enabled config
var NotifyEnabled = true

// NotifyTimeout is how long notifications stay on screen
// Set via notify.timeout_ms config
var NotifyTimeout = DefaultNotifyTimeout

// DryRun reports what would change without touching the config file or the
// compositor. Set via --dry-run command-line flag
var DryRun = false
