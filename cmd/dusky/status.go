package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/NextPr0gram/dusky/internal/config"
	"github.com/NextPr0gram/dusky/internal/hypr"
	"github.com/NextPr0gram/dusky/internal/scale"
)

// Status output styles. Styles render at full fidelity; the colorprofile
// writer downgrades the output to what the terminal can show.
var (
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	scaleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// monitorStatus is one monitor in `status --json` output.
type monitorStatus struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	RefreshRate   float64   `json:"refreshRate"`
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Scale         float64   `json:"scale"`
	LogicalWidth  int       `json:"logicalWidth"`
	LogicalHeight int       `json:"logicalHeight"`
	Focused       bool      `json:"focused"`
	Ladder        []float64 `json:"ladder"`
}

// runStatus prints every monitor's mode, scale, and the ladder of factors
// eligible for it.
func runStatus(jsonOut bool) error {
	setupRuntime()
	ctx := context.Background()

	client, err := hypr.NewClient()
	if err != nil {
		return err
	}
	monitors, err := client.Monitors(ctx)
	if err != nil {
		return err
	}

	ladder := scale.New(config.Ladder)

	if jsonOut {
		out := make([]monitorStatus, 0, len(monitors))
		for _, m := range monitors {
			out = append(out, monitorStatus{
				Name:          m.Name,
				Description:   m.Description,
				Width:         m.Width,
				Height:        m.Height,
				RefreshRate:   m.RefreshRate,
				X:             m.X,
				Y:             m.Y,
				Scale:         m.Scale,
				LogicalWidth:  m.LogicalWidth(),
				LogicalHeight: m.LogicalHeight(),
				Focused:       m.Focused,
				Ladder:        ladder.Eligible(m.Width, m.Height, config.MinLogicalWidth, config.MinLogicalHeight),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	blocks := make([]string, 0, len(monitors))
	for _, m := range monitors {
		blocks = append(blocks, renderMonitor(m, ladder))
	}
	if _, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...)); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

// renderMonitor formats one monitor as a two-line block: identity and mode,
// then the ladder it is eligible for.
func renderMonitor(m hypr.Monitor, ladder scale.Ladder) string {
	marker := "  "
	if m.Focused {
		marker = focusedStyle.Render("> ")
	}

	head := fmt.Sprintf("%s%s  %dx%d@%s at %d,%d  scale %s  (%dx%d logical)",
		marker, nameStyle.Render(m.Name),
		m.Width, m.Height, scale.Format(m.RefreshRate), m.X, m.Y,
		scaleStyle.Render(scale.Format(m.Scale)),
		m.LogicalWidth(), m.LogicalHeight())

	eligible := ladder.Eligible(m.Width, m.Height, config.MinLogicalWidth, config.MinLogicalHeight)
	rungs := make([]string, 0, len(eligible))
	for _, v := range eligible {
		formatted := scale.Format(v)
		if scale.Equal(v, m.Scale) {
			rungs = append(rungs, scaleStyle.Render("["+formatted+"]"))
		} else {
			rungs = append(rungs, formatted)
		}
	}
	return head + "\n" + dimStyle.Render("    ladder:") + " " + strings.Join(rungs, "  ")
}

// runLadder prints the eligible ladder for the target monitor, one rung per
// line with the logical resolution each factor yields.
func runLadder() error {
	setupRuntime()
	ctx := context.Background()

	client, err := hypr.NewClient()
	if err != nil {
		return err
	}
	mon, err := targetMonitor(ctx, client)
	if err != nil {
		return err
	}

	ladder := scale.New(config.Ladder)
	eligible := ladder.Eligible(mon.Width, mon.Height, config.MinLogicalWidth, config.MinLogicalHeight)

	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	lines := make([]string, 0, len(eligible)+1)
	lines = append(lines, fmt.Sprintf("Scale ladder for %s (%dx%d@%s):",
		nameStyle.Render(mon.Name), mon.Width, mon.Height, scale.Format(mon.RefreshRate)))

	for _, v := range eligible {
		line := fmt.Sprintf("  %-8s %dx%d logical",
			scale.Format(v), scale.Logical(mon.Width, v), scale.Logical(mon.Height, v))
		if scale.Equal(v, mon.Scale) {
			line = scaleStyle.Render(line + "  (current)")
		} else {
			line = dimStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if _, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, lines...)); err != nil {
		return fmt.Errorf("failed to write ladder: %w", err)
	}
	return nil
}
