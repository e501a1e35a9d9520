package domain

import (
	"fmt"
	"math"
)

// Unit tells how a Score value is expressed.
type Unit int

const (
	// UnitFraction scores are floats in [0,1] (structured path).
	UnitFraction Unit = iota + 1
	// UnitPercent scores are integers in [0,100] (free-text path).
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitFraction:
		return "fraction"
	case UnitPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Score is a similarity value tagged with its unit. Scores of different
// units never compare; use Exceeds and handle ErrUnitMismatch.
type Score struct {
	Value float64
	Unit  Unit
}

// Fraction builds a [0,1] score, clamping out-of-range input.
func Fraction(v float64) Score {
	return Score{Value: math.Max(0, math.Min(1, v)), Unit: UnitFraction}
}

// Percent builds an integer [0,100] score, clamping out-of-range input.
func Percent(v int) Score {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return Score{Value: float64(v), Unit: UnitPercent}
}

// Exceeds reports whether s is strictly greater than threshold.
func (s Score) Exceeds(threshold Score) (bool, error) {
	if s.Unit != threshold.Unit {
		return false, fmt.Errorf("%w: %s score against %s threshold", ErrUnitMismatch, s.Unit, threshold.Unit)
	}
	return s.Value > threshold.Value, nil
}

// Percentage returns the integer percent, truncating fractions toward zero.
func (s Score) Percentage() int {
	if s.Unit == UnitFraction {
		return int(s.Value * 100)
	}
	return int(s.Value)
}

func (s Score) String() string {
	if s.Unit == UnitFraction {
		return fmt.Sprintf("%.2f", s.Value)
	}
	return fmt.Sprintf("%d%%", int(s.Value))
}
