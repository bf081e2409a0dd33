package photometry

import (
	"strconv"
	"strings"
)

// Lamp is the read-only lamp metadata attached to a measurement.
type Lamp struct {
	Count               int
	RatedFlux           float64 // total lamp flux in lumens
	ColorAppearance     string  // e.g. "3000K", "LED 4000 Kelvin"
	ColorRenderingGroup string  // DIN group ("1A", "2B") or a CRI number
}

// ColorTemperature extracts a correlated colour temperature in Kelvin from
// the colour appearance text. It looks for the first run of four digits
// between 1000 and 20000.
func (l Lamp) ColorTemperature() (float64, bool) {
	digits := 0
	for i, r := range l.ColorAppearance {
		if r < '0' || r > '9' {
			digits = 0
			continue
		}
		digits++
		if digits != 4 {
			continue
		}
		kelvin, err := strconv.ParseFloat(l.ColorAppearance[i-3:i+1], 64)
		if err == nil && kelvin >= 1000 && kelvin <= 20000 {
			return kelvin, true
		}
	}
	return 0, false
}

// CRI returns the colour rendering index for the lamp's colour rendering
// group, or a number given directly.
func (l Lamp) CRI() (float64, bool) {
	group := strings.ToUpper(strings.TrimSpace(l.ColorRenderingGroup))
	switch group {
	case "":
		return 0, false
	case "1A", "1":
		return 95, true
	case "1B":
		return 85, true
	case "2A", "2":
		return 75, true
	case "2B":
		return 65, true
	case "3":
		return 50, true
	case "4":
		return 30, true
	}
	cri, err := strconv.ParseFloat(group, 64)
	if err != nil || cri < 0 || cri > 100 {
		return 0, false
	}
	return cri, true
}
