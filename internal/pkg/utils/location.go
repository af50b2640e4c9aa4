package utils

import "fmt"

// FormatLatLong renders a coordinate pair as a compact display label,
// used when a punch-in carries coordinates but no named location.
func FormatLatLong(lat, long float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, long)
}
