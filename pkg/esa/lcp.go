package esa

// fillLCP computes the LCP array from the sorted suffix array with Kasai's
// algorithm (algorithm 4.1 in Abouelhoda–Kurtz–Ohlebusch). Walking the
// suffixes in text order lets each candidate length h shrink by at most one
// per step, so the total work is linear.
func (x *Index[E]) fillLCP() {
	n := x.seq.Len()
	rank := make([]int, n)
	for i, s := range x.sa {
		rank[s] = i
	}
	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			continue
		}
		k := x.sa[rank[i]-1]
		for i+h < n && k+h < n && x.seq.At(i+h) == x.seq.At(k+h) {
			h++
		}
		x.tabs.setLCP(rank[i], h)
		if h > 0 {
			h--
		}
	}
}

// fillChildTable computes up, down and nextl in one pass over the LCP array
// (algorithms 6.2 and 6.5 in Abouelhoda–Kurtz–Ohlebusch). Both stacks hold
// positions with non-decreasing LCP values and start at position 0.
func (x *Index[E]) fillChildTable() {
	last := undef
	ud := []int{0}
	nl := []int{0}
	for i := 1; i < len(x.sa); i++ {
		for x.tabs.lcpAt(i) < x.tabs.lcpAt(ud[len(ud)-1]) {
			last = ud[len(ud)-1]
			ud = ud[:len(ud)-1]
			top := ud[len(ud)-1]
			if x.tabs.lcpAt(i) <= x.tabs.lcpAt(top) && x.tabs.lcpAt(top) != x.tabs.lcpAt(last) {
				x.tabs.setDown(top, last)
			}
		}
		if last != undef {
			x.tabs.setUp(i, last)
			last = undef
		}
		ud = append(ud, i)

		for x.tabs.lcpAt(i) < x.tabs.lcpAt(nl[len(nl)-1]) {
			nl = nl[:len(nl)-1]
		}
		if x.tabs.lcpAt(i) == x.tabs.lcpAt(nl[len(nl)-1]) {
			x.tabs.setNextl(nl[len(nl)-1], i)
			nl = nl[:len(nl)-1]
		}
		nl = append(nl, i)
	}
}
