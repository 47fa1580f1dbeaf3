package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "02/01/2006"

// parseDate parses a DD/MM/YYYY date. Unparseable text yields nil and the
// row is retained.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &d
}

// parseClock converts an HH:MM:SS or HH:MM elapsed-time string to total
// minutes. Any other shape or non-numeric part degrades to 0; the result
// is never negative.
func parseClock(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	var minutes float64
	switch len(parts) {
	case 3:
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		sec, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errH != nil || errM != nil || errS != nil {
			return 0
		}
		minutes = float64(h)*60 + float64(m) + float64(sec)/60
	case 2:
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH != nil || errM != nil {
			return 0
		}
		minutes = float64(h)*60 + float64(m)
	default:
		return 0
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// parsePercent parses a localized percentage string ("45,5%") into a
// float. Empty, "nan" and unparseable values yield 0.
func parsePercent(s string) float64 {
	if v := parsePercentNullable(s); v != nil {
		return *v
	}
	return 0
}

// parsePercentNullable is the camera-column variant: absence is reported
// as nil, never forced to 0.
func parsePercentNullable(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
