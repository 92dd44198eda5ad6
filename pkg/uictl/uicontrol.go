package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// RangedDial is a Dial whose value stays within fixed bounds.
type RangedDial[N Number] interface {
	Dial[N]
	Range() (lo, hi N)
}

// Levels is a control that reads a series of values, oldest first.
type Levels[N Number] interface {
	Read() []N
}

// Fraction returns where the dial's value sits in its range, from 0 to 1.
// A degenerate range reads as 0.
func Fraction[N Number](d RangedDial[N]) float64 {
	lo, hi := d.Range()
	if hi <= lo {
		return 0
	}

	f := float64(d.Read()-lo) / float64(hi-lo)

	return min(max(f, 0), 1)
}
