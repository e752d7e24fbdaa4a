package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDice caps the dice in one Expression so a script cannot ask for an
// unbounded number of rolls.
const MaxDice = 100

// Expression is a parsed "NdS+M" roll. A bare number parses to an Expression
// with no dice whose Modifier is that number.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Parse reads "d6", "3d6", "2d10-1", "4" and the like. Case and spaces are
// ignored.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	if s == "" {
		return Expression{}, errors.New("dice: empty expression")
	}
	e := Expression{Raw: expr}

	d := strings.IndexByte(s, 'd')
	if d < 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: %q is neither a roll nor a number", expr)
		}
		e.Modifier = n
		return e, nil
	}

	e.Count = 1
	if d > 0 {
		n, err := strconv.Atoi(s[:d])
		if err != nil || n < 1 || n > MaxDice {
			return Expression{}, fmt.Errorf("dice: die count in %q must be 1..%d", expr, MaxDice)
		}
		e.Count = n
	}

	rest := s[d+1:]
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		m, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: bad modifier in %q", expr)
		}
		e.Modifier = m
		rest = rest[:i]
	}
	sides, err := strconv.Atoi(rest)
	if err != nil || sides < 2 {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be at least 2", expr)
	}
	e.Sides = sides
	return e, nil
}

// Roll evaluates e against src.
//
// Postcondition: len(result.Dice) == e.Count.
func Roll(e Expression, src Source) RollResult {
	r := RollResult{Expression: e.Raw, Modifier: e.Modifier}
	if e.Count > 0 {
		r.Dice = make([]int, e.Count)
		for i := range r.Dice {
			r.Dice[i] = src.Intn(e.Sides) + 1
		}
	}
	return r
}

// RollExpr parses expr and rolls it against src.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
