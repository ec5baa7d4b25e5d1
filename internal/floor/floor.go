// Package floor converts between the wire/shared-memory floor label
// alphabet ("B99".."B1", "0", "1".."999") and the signed integers the
// car, controller, and safety monitor reason about internally.
package floor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Min and Max bound the integer floor range the label alphabet can express.
const (
	Min = -99
	Max = 999
)

// ErrOutOfRange is returned when an integer cannot be expressed as a label.
var ErrOutOfRange = errors.New("floor: value out of range")

// ErrInvalidLabel is returned when a string is not a well-formed floor label.
var ErrInvalidLabel = errors.New("floor: invalid label")

// ToInt parses a floor label into its signed integer value.
// "B<k>" maps to -k, "0" maps to 0, and "<k>" maps to +k.
func ToInt(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	if label[0] == 'B' {
		n, err := strconv.Atoi(label[1:])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
		}
		v := -n
		if v < Min {
			return 0, fmt.Errorf("%w: %q", ErrOutOfRange, label)
		}
		return v, nil
	}

	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if n < 0 || n > Max {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, label)
	}
	return n, nil
}

// FromInt formats a signed integer as its canonical floor label.
func FromInt(v int) (string, error) {
	if v < Min || v > Max {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	if v < 0 {
		return "B" + strconv.Itoa(-v), nil
	}
	return strconv.Itoa(v), nil
}

// Valid reports whether label is a well-formed floor label in range.
func Valid(label string) bool {
	_, err := ToInt(label)
	return err == nil
}

// Increment returns the floor one above v, and false if that would
// exceed high (a car-specific ceiling, itself never beyond Max).
func Increment(v, high int) (int, bool) {
	if v >= high {
		return v, false
	}
	return v + 1, true
}

// Decrement returns the floor one below v, and false if that would
// go below low (a car-specific floor, itself never beneath Min).
func Decrement(v, low int) (int, bool) {
	if v <= low {
		return v, false
	}
	return v - 1, true
}

// Within reports whether v lies in the closed range [low, high].
func Within(v, low, high int) bool {
	return v >= low && v <= high
}

// NormalizeLabel re-parses and re-formats a label, rejecting malformed
// variants such as "B0" and rewriting leading-zero forms ("007", "B07")
// to their canonical label ("7", "B7") — forms that convert_floor/format_floor
// in the original C source would not itself emit but might accept on input.
func NormalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	v, err := ToInt(label)
	if err != nil {
		return "", err
	}
	return FromInt(v)
}
