package esa

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/pkg/sequence"
)

// sortTrie is the transient per-bucket structure used by the deep phase of
// the suffix sort. A node at depth d is keyed by the element at idx+d; a
// node with no children is a leaf holding one suffix start. Ownership is
// strictly tree-shaped and the whole trie is discarded after collect.
type sortTrie[E constraints.Ordered] struct {
	seq      sequence.Sequence[E]
	depth    int
	idx      int
	children []*sortTrie[E] // ascending by key element
}

func newSortTrie[E constraints.Ordered](seq sequence.Sequence[E], depth, idx int) *sortTrie[E] {
	return &sortTrie[E]{seq: seq, depth: depth, idx: idx}
}

func (t *sortTrie[E]) isLeaf() bool { return len(t.children) == 0 }

// elem is the key element of this node. The sentinel keeps idx+depth in
// range for every node that is ever used as a child.
func (t *sortTrie[E]) elem() E { return t.seq.At(t.idx + t.depth) }

// extendSelf pushes the node's own suffix one level down, turning a leaf
// into an inner node.
func (t *sortTrie[E]) extendSelf() {
	t.insertChild(newSortTrie(t.seq, t.depth+1, t.idx))
}

func (t *sortTrie[E]) insertChild(c *sortTrie[E]) {
	key := c.elem()
	i := sort.Search(len(t.children), func(i int) bool { return t.children[i].elem() >= key })
	t.children = append(t.children, nil)
	copy(t.children[i+1:], t.children[i:])
	t.children[i] = c
}

func (t *sortTrie[E]) childFor(el E) *sortTrie[E] {
	i := sort.Search(len(t.children), func(i int) bool { return t.children[i].elem() >= el })
	if i < len(t.children) && t.children[i].elem() == el {
		return t.children[i]
	}
	return nil
}

// add inserts the suffix starting at idx, descending from the root while
// elements agree and branching at the first disagreement. d is the walker
// depth: children of the current node key on element idx+d.
func (t *sortTrie[E]) add(d, idx int) {
	s := t
	for {
		if s.isLeaf() {
			s.extendSelf()
		}
		el := s.seq.At(idx + d)
		if c := s.childFor(el); c != nil {
			s = c
			d++
			continue
		}
		s.insertChild(newSortTrie(s.seq, d, idx))
		return
	}
}

// collect returns the suffix starts of all leaves in lexicographic order.
// Depth-first with an explicit stack; children are pushed in reverse so the
// smallest key pops first.
func (t *sortTrie[E]) collect() []int {
	var out []int
	stack := []*sortTrie[E]{t}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.isLeaf() {
			out = append(out, curr.idx)
			continue
		}
		for i := len(curr.children) - 1; i >= 0; i-- {
			stack = append(stack, curr.children[i])
		}
	}
	return out
}
