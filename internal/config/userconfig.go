package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/NextPr0gram/dusky/internal/scale"
)

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Scale  ScaleConfig  `toml:"scale"`
	Apply  ApplyConfig  `toml:"apply"`
	Notify NotifyConfig `toml:"notify"`
}

// ScaleConfig holds scale negotiation settings
type ScaleConfig struct {
	Ladder           []float64 `toml:"ladder"`             // Candidate scale factors, any order (default: built-in ladder)
	MinLogicalWidth  int       `toml:"min_logical_width"`  // Smallest acceptable logical width (default: 640)
	MinLogicalHeight int       `toml:"min_logical_height"` // Smallest acceptable logical height (default: 480)
}

// ApplyConfig holds persistence and live-apply settings
type ApplyConfig struct {
	MonitorsFile  string `toml:"monitors_file"`   // Monitors config file to rewrite (default: $XDG_CONFIG_HOME/hypr/monitors.conf)
	VerifyDelayMS int    `toml:"verify_delay_ms"` // Wait before the post-apply verification read (default: 500)
}

// NotifyConfig holds on-screen notification settings
type NotifyConfig struct {
	Enabled   *bool `toml:"enabled"`    // Show a compositor notification after changes (default: true)
	TimeoutMS int   `toml:"timeout_ms"` // How long notifications stay visible (default: 4000)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	enabled := true
	return &UserConfig{
		Scale: ScaleConfig{
			Ladder:           scale.Default().Candidates(),
			MinLogicalWidth:  DefaultMinLogicalWidth,
			MinLogicalHeight: DefaultMinLogicalHeight,
		},
		Apply: ApplyConfig{
			MonitorsFile:  "", // Empty means the default XDG path
			VerifyDelayMS: int(DefaultVerifyDelay.Milliseconds()),
		},
		Notify: NotifyConfig{
			Enabled:   &enabled,
			TimeoutMS: int(DefaultNotifyTimeout.Milliseconds()),
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	// Try to find existing config file
	configPath, err := xdg.SearchConfigFile(UserConfigPath)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}

	// Read and parse config file
	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in missing sections with defaults and drop unusable values
	defaultCfg := DefaultConfig()
	fillMissingScale(&cfg, defaultCfg)
	fillMissingApply(&cfg, defaultCfg)
	fillMissingNotify(&cfg, defaultCfg)

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	// Get config file path
	configPath, err := xdg.ConfigFile(UserConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal config to TOML
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	// Build config file with header comments and marshaled data
	var sb strings.Builder
	sb.WriteString("# dusky Configuration File\n")
	sb.WriteString("# This file controls scale negotiation and how changes are persisted\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# Documentation: https://github.com/NextPr0gram/dusky\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# SCALE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# ladder: Candidate scale factors to step through. Candidates whose logical\n")
	sb.WriteString("#   width would not land near a whole pixel count are skipped per monitor.\n")
	sb.WriteString("#\n")
	sb.WriteString("# min_logical_width / min_logical_height: Scales that would shrink the\n")
	sb.WriteString("#   logical resolution below this floor are never offered.\n")
	sb.WriteString("#   Defaults: 640 x 480\n")
	sb.WriteString("#\n")
	sb.WriteString("# [apply] monitors_file: The Hyprland-syntax file dusky rewrites. Point it\n")
	sb.WriteString("#   at a file your hyprland.conf sources, e.g. source = ~/.config/hypr/monitors.conf\n")
	sb.WriteString("#   Default: " + filepath.Join("$XDG_CONFIG_HOME", DefaultMonitorsPath) + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [apply] verify_delay_ms: How long to wait after a live apply before\n")
	sb.WriteString("#   reading back what the compositor actually set. Default: 500\n")
	sb.WriteString("#\n")
	sb.WriteString("# [notify] enabled / timeout_ms: On-screen notification after a change.\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissingScale fills in any missing scale settings with defaults and
// drops ladder entries that can never be valid scale factors.
func fillMissingScale(cfg, defaultCfg *UserConfig) {
	if len(cfg.Scale.Ladder) == 0 {
		cfg.Scale.Ladder = defaultCfg.Scale.Ladder
	} else {
		kept := make([]float64, 0, len(cfg.Scale.Ladder))
		for _, v := range cfg.Scale.Ladder {
			if v <= 0 {
				log.Warnf("Ignoring non-positive ladder entry %v", v)
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) == 0 {
			log.Warn("Configured ladder has no usable entries, using the built-in ladder")
			kept = defaultCfg.Scale.Ladder
		}
		cfg.Scale.Ladder = kept
	}

	if cfg.Scale.MinLogicalWidth <= 0 {
		cfg.Scale.MinLogicalWidth = defaultCfg.Scale.MinLogicalWidth
	}
	if cfg.Scale.MinLogicalHeight <= 0 {
		cfg.Scale.MinLogicalHeight = defaultCfg.Scale.MinLogicalHeight
	}
}

// fillMissingApply fills in any missing apply settings with defaults
func fillMissingApply(cfg, defaultCfg *UserConfig) {
	// MonitorsFile defaults to empty (use the XDG default), so we don't override it
	if cfg.Apply.VerifyDelayMS <= 0 {
		cfg.Apply.VerifyDelayMS = defaultCfg.Apply.VerifyDelayMS
	}
}

// fillMissingNotify fills in any missing notify settings with defaults
func fillMissingNotify(cfg, defaultCfg *UserConfig) {
	// Enabled stays nil when unset; the override step treats nil as true
	if cfg.Notify.TimeoutMS <= 0 {
		cfg.Notify.TimeoutMS = defaultCfg.Notify.TimeoutMS
	}
}

// WriteDefaultConfig writes a fresh default config file with its documented
// header, overwriting any existing file, and returns the defaults.
func WriteDefaultConfig() (*UserConfig, error) {
	return createDefaultConfig()
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(UserConfigPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(UserConfigPath)
	}
	return path, nil
}
