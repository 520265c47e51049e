package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// Monitor selects the monitor to operate on instead of the focused one
	Monitor string

	// MonitorsFile overrides the monitors config file to rewrite
	MonitorsFile string

	// DryRun reports the negotiated change without persisting or applying it
	DryRun bool

	// NoNotify suppresses the on-screen compositor notification
	NoNotify bool
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// Target monitor - flag only; empty means the focused monitor
	if overrides.Monitor != "" {
		TargetMonitor = overrides.Monitor
	}

	// Monitors file - CLI flag takes precedence, then user config, then the
	// default location under the XDG config dir
	path := overrides.MonitorsFile
	if path == "" && userConfig != nil && userConfig.Apply.MonitorsFile != "" {
		path = userConfig.Apply.MonitorsFile
	}
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, DefaultMonitorsPath)
	} else {
		path = expandHome(path)
	}
	MonitorsFile = path

	// Negotiation parameters - only from user config
	if userConfig != nil {
		if len(userConfig.Scale.Ladder) > 0 {
			Ladder = userConfig.Scale.Ladder
		}
		if userConfig.Scale.MinLogicalWidth > 0 {
			MinLogicalWidth = userConfig.Scale.MinLogicalWidth
		}
		if userConfig.Scale.MinLogicalHeight > 0 {
			MinLogicalHeight = userConfig.Scale.MinLogicalHeight
		}
		if userConfig.Apply.VerifyDelayMS > 0 {
			VerifyDelay = time.Duration(userConfig.Apply.VerifyDelayMS) * time.Millisecond
		}
		if userConfig.Notify.Enabled != nil {
			NotifyEnabled = *userConfig.Notify.Enabled
		}
		if userConfig.Notify.TimeoutMS > 0 {
			NotifyTimeout = time.Duration(userConfig.Notify.TimeoutMS) * time.Millisecond
		}
	}

	// Notifications - the flag wins over config
	if overrides.NoNotify {
		NotifyEnabled = false
	}

	// Dry run - flag only
	if overrides.DryRun {
		DryRun = true
	}
}

// expandHome resolves a leading ~/ against the user's home directory. Paths
// it cannot resolve come back unchanged.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
