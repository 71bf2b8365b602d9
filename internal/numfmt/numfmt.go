// Package numfmt scales decimal literals while preserving how they were
// written. The model compiler is whitespace-column sensitive in a few
// places, so a negative sign that disappears after scaling is replaced
// with a single leading space instead of shifting the column.
package numfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimals reports the number of fractional digits in a decimal literal.
// Literals without a decimal point have zero.
func Decimals(literal string) int {
	s := strings.TrimSpace(literal)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	return len(s) - dot - 1
}

// Scale multiplies a decimal literal by factor and formats the result in
// fixed-point notation with the same fractional-digit count as the input.
// When the input carried a negative sign and the scaled value no longer
// does, the sign position is held by a leading space.
func Scale(literal string, factor float64) (string, error) {
	return scale(literal, factor, Decimals(literal))
}

// ScaleFixed is Scale with the output precision pinned to a fixed number
// of fractional digits, ignoring how the input was written. Eyeball
// geometry uses this with three digits.
func ScaleFixed(literal string, factor float64, decimals int) (string, error) {
	return scale(literal, factor, decimals)
}

func scale(literal string, factor float64, decimals int) (string, error) {
	trimmed := strings.TrimSpace(literal)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return "", fmt.Errorf("not a decimal literal %q: %w", literal, err)
	}

	out := strconv.FormatFloat(value*factor, 'f', decimals, 64)
	// FormatFloat can produce "-0.000"; normalize so the sign rules below
	// see a genuine sign change.
	if strings.HasPrefix(out, "-") && strings.Trim(out[1:], "0.") == "" {
		out = out[1:]
	}

	if strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(out, "-") {
		out = " " + out
	}
	return out, nil
}

// FormatScale renders a scale factor the way it appears in directives and
// filename suffixes: fixed point, trailing zeros and a bare decimal point
// trimmed, sign preserved.
func FormatScale(scale float64) string {
	s := strconv.FormatFloat(scale, 'f', -1, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
