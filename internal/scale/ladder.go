// Package scale selects display scale factors from a discrete ladder of candidates.
package scale

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Direction selects which neighbor of the current scale a step moves to.
type Direction int

const (
	// Up steps toward larger scale factors (smaller logical resolution).
	Up Direction = 1

	// Down steps toward smaller scale factors (larger logical resolution).
	Down Direction = -1
)

// String returns "up" or "down".
func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

const (
	// Epsilon is the tolerance for comparing scale factors. Compositors
	// report scales with float noise, so equality is never exact.
	Epsilon = 1e-3

	// SnapTolerance is the maximum fractional distance between the logical
	// width and the nearest integer for a candidate to count as clean.
	// Candidates further off produce blurry output and are filtered out.
	SnapTolerance = 0.05

	// FallbackScale is used when no ladder candidate fits the monitor.
	FallbackScale = 1.0
)

// defaultCandidates is the built-in ladder, ascending.
var defaultCandidates = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0, 2.25, 2.5, 3.0}

// Ladder is an ascending, deduplicated list of candidate scale factors.
// The zero value uses the built-in candidates.
type Ladder struct {
	candidates []float64
}

// Default returns a Ladder over the built-in candidates.
func Default() Ladder {
	return Ladder{}
}

// New returns a Ladder over the given values, sorted ascending with
// non-positive and duplicate entries dropped. If nothing survives, the
// built-in candidates are used instead.
func New(values []float64) Ladder {
	seen := make(map[float64]bool, len(values))
	var cands []float64
	for _, v := range values {
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		cands = append(cands, v)
	}
	if len(cands) == 0 {
		return Default()
	}
	sort.Float64s(cands)
	return Ladder{candidates: cands}
}

// Candidates returns a copy of the ladder's candidate list.
func (l Ladder) Candidates() []float64 {
	return append([]float64(nil), l.list()...)
}

func (l Ladder) list() []float64 {
	if len(l.candidates) == 0 {
		return defaultCandidates
	}
	return l.candidates
}

// Result is the outcome of one negotiation step.
type Result struct {
	// Scale is the negotiated factor. It is always usable, falling back to
	// FallbackScale when no candidate fits the monitor.
	Scale float64

	// LogicalWidth and LogicalHeight are the physical resolution divided by
	// Scale, rounded half up.
	LogicalWidth  int
	LogicalHeight int

	// Changed reports whether Scale differs from the caller's current value
	// by at least Epsilon. False means the ladder boundary was reached.
	Changed bool
}

// Eligible returns the candidates that fit a monitor, ascending: the logical
// resolution at the candidate must stay at or above minW x minH, and the
// logical width must land within SnapTolerance of an integer. When no
// candidate survives, Eligible returns just FallbackScale so stepping still
// has somewhere to go.
func (l Ladder) Eligible(physW, physH, minW, minH int) []float64 {
	var out []float64
	for _, s := range l.list() {
		lw := float64(physW) / s
		lh := float64(physH) / s
		if lw < float64(minW) || lh < float64(minH) {
			continue
		}
		if math.Abs(lw-math.Round(lw)) > SnapTolerance {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return []float64{FallbackScale}
	}
	return out
}

// Next negotiates one step from current in the given direction. The current
// scale does not have to be on the ladder: the step starts from the eligible
// candidate nearest to it (ties resolve to the smaller one). Steps past
// either end clamp to the boundary and come back with Changed == false.
func (l Ladder) Next(current float64, dir Direction, physW, physH, minW, minH int) Result {
	eligible := l.Eligible(physW, physH, minW, minH)

	nearest := 0
	best := math.Abs(eligible[0] - current)
	for i, s := range eligible[1:] {
		if d := math.Abs(s - current); d < best {
			best = d
			nearest = i + 1
		}
	}

	idx := nearest + int(dir)
	if idx < 0 {
		idx = 0
	}
	if idx > len(eligible)-1 {
		idx = len(eligible) - 1
	}

	next := eligible[idx]
	return Result{
		Scale:         next,
		LogicalWidth:  Logical(physW, next),
		LogicalHeight: Logical(physH, next),
		Changed:       !Equal(next, current),
	}
}

// Equal reports whether two scale factors match within Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Logical converts a physical dimension to logical pixels at the given
// factor, rounding half up.
func Logical(phys int, factor float64) int {
	return int(math.Round(float64(phys) / factor))
}

// Format renders a scale factor the way compositor configs expect it: fixed
// notation with trailing fractional zeros and a dangling dot removed, so
// 1.50 becomes "1.5" and 2.00 becomes "2". Significant digits are never
// dropped. The same formatting works for refresh rates.
func Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
