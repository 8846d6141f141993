package esa

// descend resolves a pattern against the interval tree. It keeps a worklist
// of candidate intervals and a match depth d; at every round an interval is
// either kept whole (singleton, or the interval already agrees with any
// prefix up to its lcp) or expanded into its child intervals, and each
// candidate is filtered against pattern[d]. A wildcard element keeps every
// candidate whose suffixes still have an element at depth d; anything else
// must equal the candidate's representative element at depth d.
//
// Every surviving interval is a contiguous block of suffix-array positions
// whose suffixes all match the pattern. An empty pattern survives as the
// root interval, so the zero-length query matches the entire corpus.
func (x *Index[E]) descend(w []E, wildcard E) []interval {
	work := []interval{x.rootInterval()}
	for depth := 0; depth < len(w) && len(work) > 0; depth++ {
		var next []interval
		for _, curr := range work {
			var candidates []interval
			if curr.size() == 1 || depth < x.lcpOf(curr) {
				candidates = append(candidates, curr)
			} else {
				candidates = x.childIntervals(curr)
			}
			for _, cand := range candidates {
				el, ok := x.elemAt(cand.i, depth)
				if !ok {
					continue
				}
				if w[depth] == wildcard || el == w[depth] {
					next = append(next, cand)
				}
			}
		}
		work = next
	}
	return work
}

// FindPosition returns one start position of the pattern in the sequence,
// or ErrNotFound. The wildcard element matches any single element; pass the
// zero value of E for the default.
func (x *Index[E]) FindPosition(w []E, wildcard E) (int, error) {
	found := x.descend(w, wildcard)
	if len(found) == 0 {
		return 0, ErrNotFound
	}
	return x.sa[found[0].i], nil
}

// FindAllPositions returns every start position of the pattern. The result
// is in suffix-array order, not position order.
func (x *Index[E]) FindAllPositions(w []E, wildcard E) []int {
	var results []int
	for _, iv := range x.descend(w, wildcard) {
		for j := iv.i; j <= iv.j; j++ {
			results = append(results, x.sa[j])
		}
	}
	return results
}

// FindCount returns the number of occurrences of the pattern.
func (x *Index[E]) FindCount(w []E, wildcard E) int {
	count := 0
	for _, iv := range x.descend(w, wildcard) {
		count += iv.size()
	}
	return count
}
