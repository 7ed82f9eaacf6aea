package utils

import "strconv"

// ParseBoundedInt parses a query parameter into an int, falling back to def
// when the value is empty or not a number, and clamping the result to
// [min, max].
func ParseBoundedInt(value string, def, min, max int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
