package proforma

import (
	"fmt"
	"math"
)

// Percent is a percentage value, 5.25 meaning 5.25%.
type Percent float64

// Pct converts a fraction (0.0525) into a Percent (5.25%).
func Pct(fraction float64) Percent { return Percent(fraction * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
		return "N/A"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Multiple is a ratio displayed as a multiplier, like a DSCR or an equity multiple.
type Multiple float64

func (x Multiple) String() string {
	switch {
	case math.IsInf(float64(x), 1):
		return "∞"
	case math.IsNaN(float64(x)) || math.IsInf(float64(x), -1):
		return "N/A"
	}
	return fmt.Sprintf("%.2fx", x)
}
