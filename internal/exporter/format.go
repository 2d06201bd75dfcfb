package exporter

import (
	"strconv"
	"strings"
)

// formatFloat formats a float64 with the fewest digits that read back to the
// same value
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatList joins list cells with a pipe so they stay in one CSV field
func formatList(items []string) string {
	return strings.Join(items, "|")
}
