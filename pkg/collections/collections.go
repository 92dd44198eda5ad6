package collections

import "golang.org/x/exp/constraints"

// Apply applies the applicator function to each item in the input slice.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n < 2 yields just lo.
func Linspace[F constraints.Float](lo, hi F, n int) []F {
	if n < 2 {
		return []F{lo}
	}

	out := make([]F, n)
	step := (hi - lo) / F(n-1)
	for i := range out {
		out[i] = lo + step*F(i)
	}
	out[n-1] = hi

	return out
}
