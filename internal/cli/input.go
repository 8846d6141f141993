// Package cli implements the interactive query loop: one query per stdin
// line, one occurrence count per stdout line.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/internal/logger"
	"github.com/bastiangx/gramserve/pkg/esa"
	"github.com/bastiangx/gramserve/pkg/server"
)

// InputHandler reads queries from stdin, tokenizes them with the corpus
// rules and prints the occurrence count for each. EOF ends the loop.
type InputHandler[E constraints.Ordered] struct {
	index        *esa.Index[E]
	tokenize     func(string) []E
	wildcard     E
	cache        *server.CountCache
	maxQueryLen  int
	requestCount int
	log          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
// cache may be nil to disable count caching.
func NewInputHandler[E constraints.Ordered](index *esa.Index[E], tokenize func(string) []E, wildcard E, cache *server.CountCache, maxQueryLen int) *InputHandler[E] {
	return &InputHandler[E]{
		index:       index,
		tokenize:    tokenize,
		wildcard:    wildcard,
		cache:       cache,
		maxQueryLen: maxQueryLen,
		log:         logger.Default("cli"),
	}
}

// Start begins the query loop. It reads a line from stdin, hands it to
// handleQuery and prints the count. The loop terminates on EOF; any other
// read error is returned.
func (h *InputHandler[E]) Start() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line != "" {
					h.handleQuery(strings.TrimRight(line, "\r\n"))
				}
				return nil
			}
			return err
		}
		h.handleQuery(strings.TrimRight(line, "\r\n"))
	}
}

// handleQuery counts one query line and prints the result. Oversized lines
// count as absent rather than aborting the session.
func (h *InputHandler[E]) handleQuery(line string) {
	h.requestCount++
	if len(line) > h.maxQueryLen {
		h.log.Errorf("Query too long: %d bytes", len(line))
		fmt.Println(0)
		return
	}

	if h.cache != nil {
		if count, ok := h.cache.Get(line); ok {
			h.log.Debugf("Query %d served from cache", h.requestCount)
			fmt.Println(count)
			return
		}
	}

	start := time.Now()
	count := h.index.FindCount(h.tokenize(line), h.wildcard)
	h.log.Debugf("Query %d took %s: count=%d", h.requestCount, time.Since(start), count)

	if h.cache != nil {
		h.cache.Put(line, count)
	}
	fmt.Println(count)
}
