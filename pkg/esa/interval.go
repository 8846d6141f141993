package esa

// interval is an LCP-interval [i, j] on the suffix array, inclusive on both
// ends. The interval tree is never materialized: intervals are derived on
// demand from the LCP and child tables.
type interval struct {
	i, j int
}

func (iv interval) size() int { return iv.j - iv.i + 1 }

func (x *Index[E]) rootInterval() interval {
	return interval{0, len(x.sa) - 1}
}

// lcpOf returns the prefix length shared by every suffix in the interval.
// For a singleton that is the suffix length minus the trailing sentinel;
// otherwise it comes out of the child table.
func (x *Index[E]) lcpOf(iv interval) int {
	if iv.size() == 1 {
		return x.seq.Len() - x.sa[iv.i] - 1
	}
	n := len(x.sa)
	if iv.j+1 >= n {
		return 0
	}
	if up := x.tabs.upAt(iv.j + 1); iv.i < up && up <= iv.j {
		return x.tabs.lcpAt(up)
	}
	return x.tabs.lcpAt(x.tabs.downAt(iv.i))
}

// childIntervals enumerates the LCP-intervals immediately nested in parent,
// in order (algorithm 6.7 in Abouelhoda–Kurtz–Ohlebusch). Each non-singleton
// child has a strictly larger lcpOf than the parent; a singleton child whose
// suffix is the shared prefix plus the sentinel has an equal lcpOf.
// Singletons have no children.
func (x *Index[E]) childIntervals(parent interval) []interval {
	n := len(x.sa)
	if parent.i == parent.j || parent.i >= n || parent.j >= n {
		return nil
	}
	var i1 int
	if up := x.tabs.upAt(parent.j + 1); up != undef && parent.i < up {
		i1 = up
	} else if nl := x.tabs.nextlAt(parent.i); nl != undef {
		i1 = nl
	} else {
		i1 = x.tabs.downAt(parent.i)
	}
	found := []interval{{parent.i, i1 - 1}}
	for {
		nl := x.tabs.nextlAt(i1)
		if nl == undef || i1 >= parent.j {
			break
		}
		found = append(found, interval{i1, nl - 1})
		i1 = nl
	}
	return append(found, interval{i1, parent.j})
}
