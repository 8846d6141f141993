package esa

import "sort"

// FindAllPositionsSkip finds skip-grams: parts is the ordered list of
// sub-patterns and every consecutive pair of parts must start minSkip
// exclusive to maxSkip inclusive apart. Returned positions are those of the
// first part. Wildcards are allowed inside each part.
//
// The walk keeps one cursor per part's sorted position list. For each
// position of the first part the later cursors are advanced until every
// consecutive gap g satisfies minSkip < g <= maxSkip; a too-small gap
// advances the later cursor, a too-large gap advances the earlier cursor and
// backs up one pair. Any cursor running off its list ends the walk.
func (x *Index[E]) FindAllPositionsSkip(parts [][]E, minSkip, maxSkip int, wildcard E) []int {
	var out []int
	lists := make([][]int, 0, len(parts))
	for _, part := range parts {
		positions := x.FindAllPositions(part, wildcard)
		sort.Ints(positions)
		if len(positions) == 0 {
			return out
		}
		lists = append(lists, positions)
	}
	if len(lists) == 0 {
		return out
	}
	if len(lists) == 1 {
		return lists[0]
	}

	cursors := make([]int, len(lists))
	prev, next := 0, 1
	for cursors[0] < len(lists[0]) {
		for lists[next][cursors[next]] <= lists[prev][cursors[prev]] {
			cursors[next]++
			if cursors[next] == len(lists[next]) {
				return out
			}
		}
		gap := lists[next][cursors[next]] - lists[prev][cursors[prev]]
		switch {
		case minSkip < gap && gap <= maxSkip:
			prev++
			next++
			if next == len(lists) {
				out = append(out, lists[0][cursors[0]])
				cursors[0]++
				prev, next = 0, 1
			}
		case gap <= minSkip:
			cursors[next]++
			if cursors[next] == len(lists[next]) {
				return out
			}
		default:
			cursors[prev]++
			if cursors[prev] == len(lists[prev]) {
				return out
			}
			if prev > 0 {
				prev--
				next--
			}
		}
	}
	return out
}

// FindAllPositionsSkipCount returns the number of skip-gram matches.
func (x *Index[E]) FindAllPositionsSkipCount(parts [][]E, minSkip, maxSkip int, wildcard E) int {
	return len(x.FindAllPositionsSkip(parts, minSkip, maxSkip, wildcard))
}
