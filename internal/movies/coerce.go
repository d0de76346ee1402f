package movies

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order; month-first wins for ambiguous slashed dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// parseNumber coerces a cell to a finite float. Empty, non-numeric, NaN and
// infinite values report ok=false.
func parseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parsePositive is parseNumber with zero and negative values treated as missing.
func parsePositive(s string) (float64, bool) {
	f, ok := parseNumber(s)
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}

func parseDate(s string) (time.Time, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
