package formatting

import "strconv"

// FormatPercent renders a 0.0-1.0 score as a percentage with the given precision.
// Scores outside the range are clamped.
func FormatPercent(score float64, precision int) string {
	score = min(max(score, 0), 1)
	return strconv.FormatFloat(score*100, 'f', max(precision, 0), 64) + "%"
}
