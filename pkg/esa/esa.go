// Package esa is the core index: an enhanced suffix array over a generic
// element sequence, answering substring, wildcard and skip-gram queries in
// time proportional to the pattern.
//
// The index is the flat suffix array plus the auxiliary tables of
// Abouelhoda, Kurtz and Ohlebusch, "Replacing suffix trees with enhanced
// suffix arrays" (2003): the LCP array and the up/down/nextl child table
// that together emulate suffix-tree navigation without materializing a tree.
// All tables are filled once during Build and never mutated afterwards, so
// any number of goroutines may query the same Index concurrently.
package esa

import (
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/pkg/sequence"
)

var (
	// ErrNotFound is returned by FindPosition when the pattern is absent.
	ErrNotFound = errors.New("esa: pattern not found")
)

// Index is an immutable enhanced suffix array over a sequence of elements E.
// It does not own the sequence: the caller must keep it alive and unchanged
// for as long as the Index is in use.
type Index[E constraints.Ordered] struct {
	seq  sequence.Sequence[E]
	sa   []int
	tabs *childTable
}

// Build constructs the index: suffix sort, LCP fill, child-table fill.
// The sequence must end in a unique, strictly maximal sentinel element;
// Build rejects sequences that violate this.
func Build[E constraints.Ordered](seq sequence.Sequence[E]) (*Index[E], error) {
	if err := sequence.Validate(seq); err != nil {
		return nil, err
	}
	x := &Index[E]{seq: seq}
	log.Debugf("Building index over %d elements", seq.Len())
	x.sortSuffixes()
	x.tabs = newChildTable(seq.Len())
	x.fillLCP()
	x.fillChildTable()
	log.Debugf("Index ready: %d suffixes, %d overflow entries", len(x.sa), x.tabs.overflowLen())
	return x, nil
}

// Len returns the number of elements in the indexed sequence, sentinel
// included.
func (x *Index[E]) Len() int {
	return x.seq.Len()
}

// elemAt reads the element at offset depth into the suffix stored at index
// position pos, reporting whether the read is in bounds.
func (x *Index[E]) elemAt(pos, depth int) (E, bool) {
	at := x.sa[pos] + depth
	if at >= x.seq.Len() {
		var zero E
		return zero, false
	}
	return x.seq.At(at), true
}
