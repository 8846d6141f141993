// Package sequence defines the read-only element sequences the index is
// built over, plus the two concrete adapters (whitespace words, decimal
// integers) used by the CLI and server front ends.
package sequence

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	ErrEmpty    = errors.New("sequence: empty sequence")
	ErrSentinel = errors.New("sequence: final element is not a unique maximal sentinel")
)

// Sequence is an immutable, positionally addressable sequence of ordered
// elements. The index holds a Sequence for its whole lifetime and never
// copies the data behind it.
type Sequence[E constraints.Ordered] interface {
	Len() int
	At(i int) E
}

// Validate checks the sentinel invariant: the final element must be strictly
// greater than every other element, which also makes it unique. Construction
// on a sequence that fails this check is undefined, so callers should treat
// an error here as fatal.
func Validate[E constraints.Ordered](s Sequence[E]) error {
	n := s.Len()
	if n == 0 {
		return ErrEmpty
	}
	last := s.At(n - 1)
	for i := 0; i < n-1; i++ {
		if s.At(i) >= last {
			return ErrSentinel
		}
	}
	return nil
}
