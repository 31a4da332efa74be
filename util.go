package formula

import "strconv"

// formatFloat renders a float64 the way formula literals are written back
// out, using the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
