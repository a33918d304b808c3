package engine

import (
	"math"
	"strconv"
	"strings"
)

// parseReals parses exactly n numeric fields.
func parseReals(fields []string, n int) ([]float64, bool) {
	if len(fields) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// parseInts parses exactly n integral fields. "4" and "4.0" are accepted,
// "4.5" is not.
func parseInts(fields []string, n int) ([]float64, bool) {
	vals, ok := parseReals(fields, n)
	if !ok {
		return nil, false
	}
	for _, v := range vals {
		if v != math.Trunc(v) {
			return nil, false
		}
	}
	return vals, true
}

// parseText returns the single trimmed field if it is non-empty.
func parseText(fields []string) (string, bool) {
	if len(fields) != 1 {
		return "", false
	}
	s := strings.TrimSpace(fields[0])
	return s, s != ""
}

// formatNum renders a number without a trailing ".0".
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
