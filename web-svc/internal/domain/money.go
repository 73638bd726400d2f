package domain

import (
	"math"
	"strconv"
)

// Every price crossing the API boundary is an integer count of minor units.
// Forms show and edit major units.

// MaxMajor is the largest major-unit amount accepted from a form. Up to it,
// every cent value is exactly representable as a float64 and as an int64.
const MaxMajor = 1e13

// ToMajor converts minor units to a major-unit amount. The result has at
// most two decimals since minor is an integer.
func ToMajor(minor int64) float64 {
	return float64(minor) / 100
}

// ToMinor converts a major-unit amount back to minor units, rounding to the
// nearest cent. Amounts beyond ±MaxMajor are clamped to that bound.
func ToMinor(major float64) int64 {
	if major > MaxMajor {
		major = MaxMajor
	} else if major < -MaxMajor {
		major = -MaxMajor
	}
	return int64(math.Round(major * 100))
}

// FormatMinor renders minor units as a major-unit string with exactly two
// decimals, without going through floating point.
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	cents := minor % 100
	pad := ""
	if cents < 10 {
		pad = "0"
	}
	return sign + strconv.FormatInt(minor/100, 10) + "." + pad + strconv.FormatInt(cents, 10)
}
