package sequence

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// WordSentinel sorts after every printable-ASCII token that does not begin
// with thirteen tildes, so appending it satisfies the sentinel invariant for
// word corpora without such tokens (Validate rejects those that have one).
const WordSentinel = "~~~~~~~~~~~~~"

// Words is a token sequence read from a text corpus. One element per token.
type Words []string

func (w Words) Len() int        { return len(w) }
func (w Words) At(i int) string { return w[i] }

// ReadWords tokenizes r into maximal runs of printable ASCII ('!'..'~').
// Every other byte is a separator and is discarded. No sentinel is appended;
// use WithSentinel before building an index.
func ReadWords(r io.Reader) (Words, error) {
	br := bufio.NewReader(r)
	var words Words
	var curr strings.Builder
	for {
		c, err := br.ReadByte()
		if err != nil {
			if curr.Len() > 0 {
				words = append(words, curr.String())
			}
			if err == io.EOF {
				return words, nil
			}
			return words, err
		}
		if '!' <= c && c <= '~' {
			curr.WriteByte(c)
			continue
		}
		if curr.Len() > 0 {
			words = append(words, curr.String())
			curr.Reset()
		}
	}
}

// ParseWords tokenizes a single line with the corpus rules. Used for queries.
func ParseWords(line string) Words {
	w, _ := ReadWords(strings.NewReader(line))
	return w
}

// Prepare lowercases and NFC-normalizes the tokens in place according to the
// flags and returns the receiver for chaining.
func (w Words) Prepare(caseSensitive, normalize bool) Words {
	for i, tok := range w {
		if !caseSensitive {
			tok = strings.ToLower(tok)
		}
		if normalize {
			tok = norm.NFC.String(tok)
		}
		w[i] = tok
	}
	return w
}

// WithSentinel returns a copy of w with the word sentinel appended.
func (w Words) WithSentinel() Words {
	out := make(Words, len(w), len(w)+1)
	copy(out, w)
	return append(out, WordSentinel)
}
