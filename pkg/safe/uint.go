// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// MaxUint24 is the largest value representable in three bytes.
const MaxUint24 = 1<<24 - 1

// ErrOutOfRange is returned when a value does not fit the target type.
var ErrOutOfRange = errors.New("value out of range")

// Integer is the set of built-in integer types accepted by the conversions.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func unsigned[T Integer](v T, limit uint64, target string) (uint64, error) {
	if v < 0 || uint64(v) > limit {
		return 0, fmt.Errorf("value %d out of %s range: %w", v, target, ErrOutOfRange)
	}
	return uint64(v), nil
}

func signed[T Integer](v T, lower, upper int64, target string) (int64, error) {
	if v < 0 {
		if int64(v) < lower {
			return 0, fmt.Errorf("value %d out of %s range: %w", v, target, ErrOutOfRange)
		}
		return int64(v), nil
	}
	if uint64(v) > uint64(upper) {
		return 0, fmt.Errorf("value %d out of %s range: %w", v, target, ErrOutOfRange)
	}
	return int64(v), nil
}

// Uint24 converts integers to a uint32 holding at most 24 bits, as used by on-disk indices.
func Uint24[T Integer](v T) (uint32, error) {
	u, err := unsigned(v, MaxUint24, "uint24")
	return uint32(u), err
}

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	u, err := unsigned(v, math.MaxUint32, "uint32")
	return uint32(u), err
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return unsigned(v, math.MaxUint64, "uint64")
}

// Int32 converts integers to int32 with range validation.
func Int32[T Integer](v T) (int32, error) {
	i, err := signed(v, math.MinInt32, math.MaxInt32, "int32")
	return int32(i), err
}

// Int64 converts integers to int64, rejecting unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	return signed(v, math.MinInt64, math.MaxInt64, "int64")
}
