package esa

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/pkg/sequence"
)

// Save writes the index tables to path, one tab-delimited line per position:
// index, suffix-array entry, lcp, up, down, nextl, each followed by a tab,
// with "-" for undefined entries. The sequence itself is not written; Load
// expects the caller to supply it again.
func (x *Index[E]) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("esa: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := range x.sa {
		fmt.Fprintf(w, "%d\t%d\t", i, x.sa[i])
		writeColumn(w, x.tabs.lcpAt(i))
		writeColumn(w, x.tabs.upAt(i))
		writeColumn(w, x.tabs.downAt(i))
		writeColumn(w, x.tabs.nextlAt(i))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("esa: writing %s: %w", path, err)
	}
	log.Debugf("Saved index tables to %s (%d lines)", path, len(x.sa))
	return nil
}

func writeColumn(w *bufio.Writer, v int) {
	if v == undef {
		w.WriteString("-\t")
		return
	}
	w.WriteString(strconv.Itoa(v))
	w.WriteByte('\t')
}

// Load restores an index previously written by Save. The sequence must be
// the one the index was built on; the loader trusts that it matches.
// Malformed or short lines are skipped, not fatal.
func Load[E constraints.Ordered](path string, seq sequence.Sequence[E]) (*Index[E], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("esa: opening %s: %w", path, err)
	}
	defer f.Close()

	x := &Index[E]{
		seq:  seq,
		sa:   make([]int, seq.Len()),
		tabs: newChildTable(seq.Len()),
	}
	scanner := bufio.NewScanner(f)
	skipped := 0
	for scanner.Scan() {
		if line := scanner.Text(); line != "" && !x.processLine(line) {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("esa: reading %s: %w", path, err)
	}
	if skipped > 0 {
		log.Debugf("Skipped %d malformed lines while loading %s", skipped, path)
	}
	return x, nil
}

// processLine applies one saved line in column order, reporting whether the
// line was usable.
func (x *Index[E]) processLine(line string) bool {
	fields := strings.Split(line, "\t")
	if len(fields) < 6 {
		return false
	}
	pos, err := strconv.Atoi(fields[0])
	if err != nil || pos < 0 || pos >= len(x.sa) {
		return false
	}
	if v, ok := parseColumn(fields[1]); ok {
		x.sa[pos] = v
	}
	if v, ok := parseColumn(fields[2]); ok {
		x.tabs.setLCP(pos, v)
	}
	if v, ok := parseColumn(fields[3]); ok {
		x.tabs.setUp(pos, v)
	}
	if v, ok := parseColumn(fields[4]); ok {
		x.tabs.setDown(pos, v)
	}
	if v, ok := parseColumn(fields[5]); ok {
		x.tabs.setNextl(pos, v)
	}
	return true
}

func parseColumn(field string) (int, bool) {
	if field == "-" {
		return 0, false
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return v, true
}
