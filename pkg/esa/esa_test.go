package esa

import (
	"errors"
	"testing"

	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/pkg/sequence"
)

func buildWords(t *testing.T, corpus string) *Index[string] {
	t.Helper()
	idx, err := Build[string](sequence.ParseWords(corpus).WithSentinel())
	if err != nil {
		t.Fatalf("Build(%q): %v", corpus, err)
	}
	return idx
}

// suffixLess compares two suffixes element by element, the ground truth the
// suffix array is checked against.
func suffixLess[E constraints.Ordered](seq sequence.Sequence[E], a, b int) bool {
	n := seq.Len()
	for {
		if a >= n || b >= n {
			return a >= n && b < n
		}
		if seq.At(a) != seq.At(b) {
			return seq.At(a) < seq.At(b)
		}
		a++
		b++
	}
}

// directLCP counts the common prefix of two suffixes by scanning.
func directLCP[E constraints.Ordered](seq sequence.Sequence[E], a, b int) int {
	n := seq.Len()
	h := 0
	for a+h < n && b+h < n && seq.At(a+h) == seq.At(b+h) {
		h++
	}
	return h
}

var invariantCorpora = []string{
	"a",
	"a b a b a",
	"a b c a b c",
	"the cat sat on the mat",
	"x x x x x x x x x x x x",
	"b a n a n a",
	"to be or not to be that is the question",
}

func TestSuffixArrayIsSortedPermutation(t *testing.T) {
	for _, corpus := range invariantCorpora {
		t.Run(corpus, func(t *testing.T) {
			idx := buildWords(t, corpus)
			n := idx.Len()
			if len(idx.sa) != n {
				t.Fatalf("suffix array has %d entries for %d elements", len(idx.sa), n)
			}
			seen := make([]bool, n)
			for _, s := range idx.sa {
				if s < 0 || s >= n || seen[s] {
					t.Fatalf("suffix array is not a permutation: %v", idx.sa)
				}
				seen[s] = true
			}
			for i := 0; i+1 < n; i++ {
				if !suffixLess(idx.seq, idx.sa[i], idx.sa[i+1]) {
					t.Errorf("suffixes %d and %d out of order (starts %d, %d)", i, i+1, idx.sa[i], idx.sa[i+1])
				}
			}
		})
	}
}

func TestLCPMatchesDirectComparison(t *testing.T) {
	for _, corpus := range invariantCorpora {
		t.Run(corpus, func(t *testing.T) {
			idx := buildWords(t, corpus)
			if got := idx.tabs.lcpAt(0); got != 0 {
				t.Errorf("lcp[0] = %d, want 0", got)
			}
			for i := 1; i < idx.Len(); i++ {
				want := directLCP(idx.seq, idx.sa[i-1], idx.sa[i])
				if got := idx.tabs.lcpAt(i); got != want {
					t.Errorf("lcp[%d] = %d, want %d", i, got, want)
				}
			}
		})
	}
}

// TestChildIntervalsPartition walks the whole interval tree and checks that
// every expansion is a contiguous partition of the parent with strictly
// increasing lcp values on the non-singleton children.
func TestChildIntervalsPartition(t *testing.T) {
	for _, corpus := range invariantCorpora {
		t.Run(corpus, func(t *testing.T) {
			idx := buildWords(t, corpus)
			stack := []interval{idx.rootInterval()}
			for len(stack) > 0 {
				parent := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if parent.size() == 1 {
					continue
				}
				children := idx.childIntervals(parent)
				if len(children) < 2 {
					t.Fatalf("interval [%d,%d] has %d children", parent.i, parent.j, len(children))
				}
				if children[0].i != parent.i || children[len(children)-1].j != parent.j {
					t.Fatalf("children of [%d,%d] do not span it: %v", parent.i, parent.j, children)
				}
				parentLCP := idx.lcpOf(parent)
				for k, child := range children {
					if k > 0 && child.i != children[k-1].j+1 {
						t.Fatalf("children of [%d,%d] are not contiguous: %v", parent.i, parent.j, children)
					}
					childLCP := idx.lcpOf(child)
					if child.size() > 1 && childLCP <= parentLCP {
						t.Errorf("child [%d,%d] lcp %d does not exceed parent lcp %d", child.i, child.j, childLCP, parentLCP)
					}
					if child.size() == 1 && childLCP < parentLCP {
						t.Errorf("singleton child [%d,%d] lcp %d below parent lcp %d", child.i, child.j, childLCP, parentLCP)
					}
					stack = append(stack, child)
				}
			}
		})
	}
}

func TestFindCountScenarios(t *testing.T) {
	testCases := []struct {
		corpus      string
		query       string
		wildcard    string
		expected    int
		description string
	}{
		{"a b a b a", "a b", "", 2, "Repeated bigram"},
		{"a b a b a", "a", "", 3, "Repeated unigram"},
		{"a b a b a", "a b a b a", "", 1, "Whole corpus"},
		{"the cat sat on the mat", "the", "", 2, "Word corpus"},
		{"a b a b a", "b b", "", 0, "Absent bigram"},
		{"a b c a b c", "a * c", "*", 2, "Wildcard in the middle"},
		{"a b c a b c", "* b", "*", 2, "Wildcard at the start"},
		{"a b a b a", "c", "", 0, "Absent unigram"},
		{"b a n a n a", "a n a", "", 2, "Overlapping occurrences"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			idx := buildWords(t, tc.corpus)
			got := idx.FindCount(sequence.ParseWords(tc.query), tc.wildcard)
			if got != tc.expected {
				t.Errorf("FindCount(%q, wildcard %q) = %d, want %d", tc.query, tc.wildcard, got, tc.expected)
			}
		})
	}
}

func TestFindAllPositionsContainsEverySubstring(t *testing.T) {
	corpus := "to be or not to be that is the question"
	idx := buildWords(t, corpus)
	n := idx.Len()
	for p := 0; p < n; p++ {
		maxLen := n - p
		if maxLen > 8 {
			maxLen = 8
		}
		for k := 1; k <= maxLen; k++ {
			w := make([]string, k)
			for i := range w {
				w[i] = idx.seq.At(p + i)
			}
			positions := idx.FindAllPositions(w, "")
			found := false
			for _, pos := range positions {
				if pos == p {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("positions for S[%d:%d] do not include %d: %v", p, p+k, p, positions)
			}
		}
	}
}

func TestEmptyPattern(t *testing.T) {
	idx := buildWords(t, "a b a b a")
	n := idx.Len()
	if got := idx.FindCount(nil, ""); got != n {
		t.Errorf("FindCount(empty) = %d, want the corpus size %d", got, n)
	}
	if got := idx.FindAllPositions(nil, ""); len(got) != n {
		t.Errorf("FindAllPositions(empty) returned %d positions, want %d", len(got), n)
	}
	pos, err := idx.FindPosition(nil, "")
	if err != nil {
		t.Fatalf("FindPosition(empty): %v", err)
	}
	if pos != idx.sa[0] {
		t.Errorf("FindPosition(empty) = %d, want SA[0] = %d", pos, idx.sa[0])
	}
}

func TestWholeCorpusPattern(t *testing.T) {
	corpus := "a b a b a"
	idx := buildWords(t, corpus)
	positions := idx.FindAllPositions(sequence.ParseWords(corpus), "")
	if len(positions) != 1 || positions[0] != 0 {
		t.Errorf("whole-corpus pattern found at %v, want exactly [0]", positions)
	}
}

func TestAllWildcardPattern(t *testing.T) {
	idx := buildWords(t, "a b a b a")
	n := idx.Len()
	for k := 1; k <= 4; k++ {
		w := make([]string, k)
		if got, want := idx.FindCount(w, ""), n-k+1; got != want {
			t.Errorf("FindCount(%d wildcards) = %d, want %d", k, got, want)
		}
	}
}

func TestFindPositionNotFound(t *testing.T) {
	idx := buildWords(t, "a b a b a")
	if _, err := idx.FindPosition(sequence.ParseWords("b b"), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindPosition(absent) error = %v, want ErrNotFound", err)
	}
}

func TestFindPositionReturnsMatch(t *testing.T) {
	idx := buildWords(t, "the cat sat on the mat")
	pos, err := idx.FindPosition(sequence.ParseWords("the"), "")
	if err != nil {
		t.Fatalf("FindPosition: %v", err)
	}
	if pos != 0 && pos != 4 {
		t.Errorf("FindPosition(\"the\") = %d, want 0 or 4", pos)
	}
}

func TestIntCorpus(t *testing.T) {
	idx, err := Build[int](sequence.ParseInts("1 2 1 2 1").WithSentinel())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := idx.FindCount([]int{1, 2}, 0); got != 2 {
		t.Errorf("FindCount([1 2]) = %d, want 2", got)
	}
	// Zero is the default wildcard for integer corpora.
	if got := idx.FindCount([]int{1, 0, 1}, 0); got != 2 {
		t.Errorf("FindCount([1 * 1]) = %d, want 2", got)
	}
}

func TestBuildRejectsBrokenSentinel(t *testing.T) {
	if _, err := Build[string](sequence.Words{"b", "a"}); !errors.Is(err, sequence.ErrSentinel) {
		t.Errorf("Build without sentinel error = %v, want ErrSentinel", err)
	}
	if _, err := Build[string](sequence.Words{}); !errors.Is(err, sequence.ErrEmpty) {
		t.Errorf("Build on empty sequence error = %v, want ErrEmpty", err)
	}
}

// TestLargeRepetitiveCorpus pushes LCP values past the inline byte range and
// forces deep sort-trie buckets.
func TestLargeRepetitiveCorpus(t *testing.T) {
	const reps = 300
	tokens := make(sequence.Words, reps)
	for i := range tokens {
		tokens[i] = "a"
	}
	idx, err := Build[string](tokens.WithSentinel())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(idx.tabs.lcpOvf) == 0 {
		t.Error("expected LCP overflow entries for a corpus of 300 repeats")
	}
	for i := 1; i < idx.Len(); i++ {
		want := directLCP(idx.seq, idx.sa[i-1], idx.sa[i])
		if got := idx.tabs.lcpAt(i); got != want {
			t.Fatalf("lcp[%d] = %d, want %d", i, got, want)
		}
	}
	for _, k := range []int{1, 2, 255, reps} {
		w := make([]string, k)
		for i := range w {
			w[i] = "a"
		}
		if got, want := idx.FindCount(w, ""), reps-k+1; got != want {
			t.Errorf("FindCount(%d repeats) = %d, want %d", k, got, want)
		}
	}
}
