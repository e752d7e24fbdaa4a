// Package body declares the closed set of body parts tracked by the
// simulation, the fixed-size per-part container, and the part groupings
// (HP pools, extremities, thermal neighbours) every subsystem shares.
package body

import (
	"fmt"
	"strings"
)

// Part identifies one tracked body part.
type Part int

const (
	Torso Part = iota
	Head
	Eyes
	Mouth
	Arms
	Hands
	Legs
	Feet

	// NumParts is the number of real body parts.
	NumParts = 8
)

// Whole is the pseudo part used to key effects that apply to the entire body.
// It is never a valid index into an Array.
const Whole Part = -1

var partNames = [NumParts]string{
	Torso: "torso",
	Head:  "head",
	Eyes:  "eyes",
	Mouth: "mouth",
	Arms:  "arms",
	Hands: "hands",
	Legs:  "legs",
	Feet:  "feet",
}

// All lists every real part in index order.
var All = [NumParts]Part{Torso, Head, Eyes, Mouth, Arms, Hands, Legs, Feet}

// Valid reports whether p indexes a real part.
func (p Part) Valid() bool { return p >= 0 && p < NumParts }

func (p Part) String() string {
	if p == Whole {
		return "whole body"
	}
	if !p.Valid() {
		return fmt.Sprintf("part(%d)", int(p))
	}
	return partNames[p]
}

// ParsePart maps a part name to its Part. "whole", "body" and the empty string
// map to Whole.
//
// Postcondition: returns an error for any unknown name.
func ParsePart(s string) (Part, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whole", "body", "whole body":
		return Whole, nil
	}
	for i, n := range partNames {
		if strings.EqualFold(n, s) {
			return Part(i), nil
		}
	}
	return Whole, fmt.Errorf("body: unknown part %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Part) MarshalText() ([]byte, error) {
	if p == Whole {
		return []byte("whole"), nil
	}
	if !p.Valid() {
		return nil, fmt.Errorf("body: cannot marshal part %d", int(p))
	}
	return []byte(partNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Part) UnmarshalText(b []byte) error {
	v, err := ParsePart(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Array holds one value per real body part. Its length is fixed at compile
// time so every per-part field stays in lock-step.
type Array[T any] [NumParts]T

// Fill returns an Array with every slot set to v.
func Fill[T any](v T) Array[T] {
	var a Array[T]
	for i := range a {
		a[i] = v
	}
	return a
}

// Get returns the value for p, or the zero value when p is not a real part.
func (a *Array[T]) Get(p Part) T {
	var zero T
	if !p.Valid() {
		return zero
	}
	return a[p]
}

// Set stores v for p. Writes to non-real parts are ignored.
func (a *Array[T]) Set(p Part, v T) {
	if p.Valid() {
		a[p] = v
	}
}
