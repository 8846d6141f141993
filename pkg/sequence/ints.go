package sequence

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// IntSentinel is strictly greater than any parsed token other than a literal
// math.MaxInt, so appending it satisfies the sentinel invariant for integer
// corpora that do not contain that value (Validate rejects those that do).
const IntSentinel = math.MaxInt

// Ints is an integer token sequence read from a text corpus.
type Ints []int

func (v Ints) Len() int     { return len(v) }
func (v Ints) At(i int) int { return v[i] }

// ReadInts parses whitespace-separated decimal integers from r. A '-' is
// accepted only at the start of a token; any other non-digit byte separates
// tokens and is otherwise discarded. No sentinel is appended; use
// WithSentinel before building an index.
func ReadInts(r io.Reader) (Ints, error) {
	br := bufio.NewReader(r)
	var ints Ints
	var curr strings.Builder
	flush := func() {
		if curr.Len() == 0 {
			return
		}
		n, err := strconv.Atoi(curr.String())
		if err != nil {
			log.Debugf("Skipping unparsable integer token %q: %v", curr.String(), err)
		} else {
			ints = append(ints, n)
		}
		curr.Reset()
	}
	for {
		c, err := br.ReadByte()
		if err != nil {
			flush()
			if err == io.EOF {
				return ints, nil
			}
			return ints, err
		}
		if '0' <= c && c <= '9' || (c == '-' && curr.Len() == 0) {
			curr.WriteByte(c)
			continue
		}
		flush()
	}
}

// ParseInts tokenizes a single line with the corpus rules. Used for queries.
func ParseInts(line string) Ints {
	v, _ := ReadInts(strings.NewReader(line))
	return v
}

// WithSentinel returns a copy of v with the integer sentinel appended.
func (v Ints) WithSentinel() Ints {
	out := make(Ints, len(v), len(v)+1)
	copy(out, v)
	return append(out, IntSentinel)
}
