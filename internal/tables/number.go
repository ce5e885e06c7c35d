package tables

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// Number is any Go numeric type accepted as a roll or table identifier
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Truncate converts a number to an int, truncating fractions toward zero
// (37.9 becomes 37, -1.5 becomes -1). NaN, infinities and values outside the
// int range are not numbers.
func Truncate[N Number](v N) (int, error) {
	switch x := any(v).(type) {
	case float32:
		return truncateFloat(float64(x))
	case float64:
		return truncateFloat(x)
	case uint:
		return fromUnsigned(uint64(x))
	case uint64:
		return fromUnsigned(x)
	}

	n := int64(v)
	if n < math.MinInt || n > math.MaxInt {
		return 0, notANumber(fmt.Sprint(v))
	}
	return int(n), nil
}

// ParseNumber reads a roll or identifier typed as text, for example a
// command line argument. "37", "37.9" and " -1.5 " are accepted.
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, notANumber(strconv.Quote(s))
	}
	return truncateFloat(f)
}

func truncateFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, notANumber(strconv.FormatFloat(f, 'g', -1, 64))
	}

	t := math.Trunc(f)
	// float64(math.MinInt) is exact, its negation is the first value past MaxInt
	if t < float64(math.MinInt) || t >= -float64(math.MinInt) {
		return 0, notANumber(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return int(t), nil
}

func fromUnsigned(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, notANumber(strconv.FormatUint(u, 10))
	}
	return int(u), nil
}

func notANumber(input string) error {
	return apperr.WrapWithCode(ErrNotANumber, apperr.CodeInvalidArgument, input).
		WithMeta("input", input)
}
