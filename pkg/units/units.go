// Package units converts internal meters into display units.
// Nothing under internal/ imports this package; conversions happen only where
// values leave the program (CLI output, HUD text).
package units

import "strconv"

const (
	metersPerYard = 0.9144
	metersPerFoot = 0.3048
)

// MetersToYards converts meters to yards.
func MetersToYards(m float64) float64 {
	return m / metersPerYard
}

// YardsToMeters converts yards to meters.
func YardsToMeters(yd float64) float64 {
	return yd * metersPerYard
}

// MetersToFeet converts meters to feet.
func MetersToFeet(m float64) float64 {
	return m / metersPerFoot
}

// FeetToMeters converts feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft * metersPerFoot
}

// Short reports whether a distance should be displayed in feet rather than yards.
// Putting range (under ~20 yd) reads better in feet.
func Short(m float64) bool {
	return m < 18.288
}

// Format renders a distance in feet when Short, yards otherwise.
func Format(m float64) string {
	if Short(m) {
		return strconv.FormatFloat(MetersToFeet(m), 'f', 1, 64) + " ft"
	}
	return strconv.FormatFloat(MetersToYards(m), 'f', 1, 64) + " yd"
}
