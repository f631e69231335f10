package memutils

import (
	"math/bits"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint
}

func CheckPositive[T Number](number T, name string) error {
	if number <= 0 {
		return cerrors.Wrapf(NonPositiveError, "%s is %d", name, number)
	}
	return nil
}

func CheckPow2[T Number](number T, name string) error {
	if err := CheckPositive(number, name); err != nil {
		return err
	}
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// Log2 returns the exponent of a power of two. The result is meaningless for other values.
func Log2(value int) int {
	return bits.TrailingZeros(uint(value))
}

// CeilPow2 rounds value up to the nearest power of two. Values below 1 round up to 1.
func CeilPow2(value int) int {
	if value <= 1 {
		return 1
	}
	return 1 << (bits.UintSize - bits.LeadingZeros(uint(value-1)))
}
