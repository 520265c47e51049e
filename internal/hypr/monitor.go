package hypr

import (
	"fmt"

	"github.com/NextPr0gram/dusky/internal/scale"
)

// Monitor is one entry of the compositor's monitor state as reported by the
// j/monitors query. It is a fresh snapshot on every query, never cached.
type Monitor struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refreshRate"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Scale       float64 `json:"scale"`
	Transform   int     `json:"transform"`
	Focused     bool    `json:"focused"`
	DPMSStatus  bool    `json:"dpmsStatus"`
	VRR         bool    `json:"vrr"`
}

// Rule renders the monitor keyword rule that pins the monitor to its
// current mode and position at the given scale, e.g.
// "DP-1,2560x1440@165,0x0,1.25". The scale arrives preformatted so the rule
// carries exactly the value that was persisted.
func (m Monitor) Rule(scaleStr string) string {
	return fmt.Sprintf("%s,%dx%d@%s,%dx%d,%s",
		m.Name, m.Width, m.Height, scale.Format(m.RefreshRate), m.X, m.Y, scaleStr)
}

// LogicalWidth returns the monitor's logical width at its current scale.
func (m Monitor) LogicalWidth() int {
	return scale.Logical(m.Width, m.Scale)
}

// LogicalHeight returns the monitor's logical height at its current scale.
func (m Monitor) LogicalHeight() int {
	return scale.Logical(m.Height, m.Scale)
}
