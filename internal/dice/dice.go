// Package dice rolls the dice used to pick rows from random tables.
package dice

import (
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// Percentile is the die most dungeon tables are rolled with
const Percentile = 100

// RollResult holds the individual dice and the total of one roll
type RollResult struct {
	Total int
	Rolls []int
	Bonus int
	Count int
	Sides int
}

// Notation describes dice such as "d100", "1d20" or "2d6+3"
type Notation struct {
	Count int
	Sides int
	Bonus int
}

// ParseNotation reads dice notation. A missing count means one die.
func ParseNotation(s string) (Notation, error) {
	text := strings.ToLower(strings.TrimSpace(s))

	countPart, rest, ok := strings.Cut(text, "d")
	if !ok {
		return Notation{}, apperr.InvalidArgumentf("invalid dice notation %q", s)
	}

	n := Notation{Count: 1}
	if countPart != "" {
		count, err := strconv.Atoi(countPart)
		if err != nil {
			return Notation{}, apperr.InvalidArgumentf("invalid dice count in %q", s)
		}
		n.Count = count
	}

	sidesPart := rest
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		sidesPart = rest[:i]
		bonus, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Notation{}, apperr.InvalidArgumentf("invalid dice bonus in %q", s)
		}
		n.Bonus = bonus
	}

	sides, err := strconv.Atoi(sidesPart)
	if err != nil {
		return Notation{}, apperr.InvalidArgumentf("invalid dice size in %q", s)
	}
	n.Sides = sides

	if err := validate(n.Count, n.Sides); err != nil {
		return Notation{}, err
	}
	return n, nil
}

// String renders the notation, for example "2d6+3"
func (n Notation) String() string {
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Bonus)
	default:
		return fmt.Sprintf("%dd%d", n.Count, n.Sides)
	}
}

// Min returns the lowest total the notation can produce
func (n Notation) Min() int {
	return n.Count + n.Bonus
}

// Max returns the highest total the notation can produce
func (n Notation) Max() int {
	return n.Count*n.Sides + n.Bonus
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("%d (%dd%d %s)", r.Total, r.Count, r.Sides, compact)
}

func validate(count, sides int) error {
	if count < 1 {
		return apperr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return apperr.InvalidArgumentf("invalid dice size %d", sides)
	}
	return nil
}
