package esa

import (
	"sort"

	"github.com/charmbracelet/log"
)

// sortSuffixes produces the suffix array in two phases: a cheap bucket sort
// on the first two elements of every suffix, then an independent refinement
// of each bucket starting at offset 2. Small buckets are sorted directly;
// larger ones go through a sort trie.
func (x *Index[E]) sortSuffixes() {
	n := x.seq.Len()
	x.sa = make([]int, n)
	for i := range x.sa {
		x.sa[i] = i
	}
	sort.Slice(x.sa, func(a, b int) bool {
		return x.lessPrefix2(x.sa[a], x.sa[b])
	})

	buckets := 0
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && x.samePrefix2(x.sa[start], x.sa[i]) {
			continue
		}
		if i-start > 1 {
			x.refineBucket(start, i)
			buckets++
		}
		start = i
	}
	log.Debugf("Suffix sort done: %d suffixes, %d refined buckets", n, buckets)
}

// lessPrefix2 orders suffixes a and b by their first two elements. A missing
// element sorts before any present one, which only ever matters for the
// sentinel suffix.
func (x *Index[E]) lessPrefix2(a, b int) bool {
	n := x.seq.Len()
	if x.seq.At(a) != x.seq.At(b) {
		return x.seq.At(a) < x.seq.At(b)
	}
	if b+1 >= n {
		return false
	}
	if a+1 >= n {
		return true
	}
	return x.seq.At(a+1) < x.seq.At(b+1)
}

func (x *Index[E]) samePrefix2(a, b int) bool {
	n := x.seq.Len()
	if x.seq.At(a) != x.seq.At(b) {
		return false
	}
	if a+1 >= n || b+1 >= n {
		return a+1 >= n && b+1 >= n
	}
	return x.seq.At(a+1) == x.seq.At(b+1)
}

// lessFrom compares suffixes a and b element-wise starting at offset d.
// The sentinel guarantees two distinct suffixes disagree before either runs
// out, but the bounds checks keep a malformed sequence from panicking.
func (x *Index[E]) lessFrom(a, b, d int) bool {
	n := x.seq.Len()
	for {
		ao, bo := a+d >= n, b+d >= n
		if ao || bo {
			return ao && !bo
		}
		ea, eb := x.seq.At(a+d), x.seq.At(b+d)
		if ea != eb {
			return ea < eb
		}
		d++
	}
}

// refineBucket sorts sa[lo:hi], whose suffixes agree on their first two
// elements, by the rest of each suffix.
func (x *Index[E]) refineBucket(lo, hi int) {
	const direct = 5
	if hi-lo < direct {
		sort.Slice(x.sa[lo:hi], func(a, b int) bool {
			return x.lessFrom(x.sa[lo+a], x.sa[lo+b], 2)
		})
		return
	}
	root := newSortTrie(x.seq, 1, x.sa[lo])
	root.extendSelf()
	for i := lo + 1; i < hi; i++ {
		root.add(2, x.sa[i])
	}
	sorted := root.collect()
	if len(sorted) != hi-lo {
		log.Errorf("Sort trie yielded %d suffixes for a bucket of %d, falling back to direct sort", len(sorted), hi-lo)
		sort.Slice(x.sa[lo:hi], func(a, b int) bool {
			return x.lessFrom(x.sa[lo+a], x.sa[lo+b], 2)
		})
		return
	}
	copy(x.sa[lo:hi], sorted)
}
