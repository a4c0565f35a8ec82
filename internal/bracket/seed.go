package bracket

import (
	"cmp"
	"math/bits"
	"slices"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// Seed filters candidates, ranks them by rating (highest first, dataset order
// on ties) and keeps the top power-of-two of them. The input is not modified.
func Seed(candidates []restaurant.Candidate, f restaurant.Filter) ([]restaurant.Candidate, error) {
	var filtered []restaurant.Candidate
	for _, c := range candidates {
		if f.Match(c) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) < 2 {
		return nil, ErrInsufficientContenders
	}

	slices.SortStableFunc(filtered, func(a, b restaurant.Candidate) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	return filtered[:Size(len(filtered))], nil
}

// Size returns the bracket size for n filtered candidates: the largest power
// of two not above n, and never below 2.
func Size(n int) int {
	if n < 2 {
		return 2
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}
