package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/exp/constraints"

	"github.com/bastiangx/gramserve/pkg/config"
	"github.com/bastiangx/gramserve/pkg/esa"
)

// Server handles the IPC for suffix-array queries. The element type and the
// query tokenizer come from the corpus adapter the index was built with.
type Server[E constraints.Ordered] struct {
	index    *esa.Index[E]
	tokenize func(string) []E
	wildcard E
	cache    *CountCache
	cfg      *config.Config
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
}

// NewServer creates a new query server using stdin/stdout for IPC
func NewServer[E constraints.Ordered](index *esa.Index[E], tokenize func(string) []E, wildcard E, cfg *config.Config) *Server[E] {
	s := &Server[E]{
		index:    index,
		tokenize: tokenize,
		wildcard: wildcard,
		cfg:      cfg,
		dec:      msgpack.NewDecoder(os.Stdin),
		enc:      msgpack.NewEncoder(os.Stdout),
	}
	if cfg.Server.EnableCache {
		s.cache = NewCountCache(cfg.Server.CacheEntries)
	}
	return s
}

// Start begins listening for IPC requests
func (s *Server[E]) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches an incoming request on its action.
func (s *Server[E]) handleRequest(request Request) {
	switch request.Action {
	case "", "count":
		s.handleCount(request)
	case "positions":
		s.handlePositions(request)
	case "skip", "skip_count":
		s.handleSkip(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

func (s *Server[E]) handleCount(request Request) {
	if !s.validQuery(request) {
		return
	}
	start := time.Now()
	count, cached := 0, false
	if s.cache != nil {
		count, cached = s.cache.Get(request.Query)
	}
	if !cached {
		count = s.index.FindCount(s.tokenize(request.Query), s.requestWildcard(request))
		if s.cache != nil && request.Wildcard == "" {
			s.cache.Put(request.Query, count)
		}
	}
	s.send(Response{
		ID:        request.ID,
		Count:     count,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server[E]) handlePositions(request Request) {
	if !s.validQuery(request) {
		return
	}
	start := time.Now()
	positions := s.index.FindAllPositions(s.tokenize(request.Query), s.requestWildcard(request))
	s.send(Response{
		ID:        request.ID,
		Count:     len(positions),
		Positions: positions,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server[E]) handleSkip(request Request) {
	if len(request.Parts) == 0 {
		s.sendError(request.ID, "Missing 'parts' parameter", 400)
		return
	}
	parts := make([][]E, 0, len(request.Parts))
	for _, part := range request.Parts {
		parts = append(parts, s.tokenize(part))
	}
	start := time.Now()
	positions := s.index.FindAllPositionsSkip(parts, request.MinSkip, request.MaxSkip, s.requestWildcard(request))
	response := Response{
		ID:        request.ID,
		Count:     len(positions),
		TimeTaken: time.Since(start).Microseconds(),
	}
	if request.Action == "skip" {
		response.Positions = positions
	}
	s.send(response)
}

// requestWildcard maps the request's wildcard token onto an element, keeping
// the server default when the request does not set one.
func (s *Server[E]) requestWildcard(request Request) E {
	if request.Wildcard == "" {
		return s.wildcard
	}
	tokens := s.tokenize(request.Wildcard)
	if len(tokens) != 1 {
		log.Debugf("Ignoring wildcard %q: not a single token", request.Wildcard)
		return s.wildcard
	}
	return tokens[0]
}

func (s *Server[E]) validQuery(request Request) bool {
	if request.Query == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return false
	}
	if len(request.Query) > s.cfg.Server.MaxQueryLen {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d", s.cfg.Server.MaxQueryLen), 400)
		log.Debug("Query is too long in request")
		return false
	}
	return true
}

// send marshals the response and writes it to the client.
func (s *Server[E]) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server[E]) sendError(id, message string, code int) {
	s.send(QueryError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
