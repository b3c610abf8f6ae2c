package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// StaticSession serves pre-recorded rows keyed by resource path.
// Filters are applied as exact attribute matches.
type StaticSession struct {
	mu     sync.Mutex
	tables map[string][]Row
	errs   map[string]error
	closed bool
	calls  int
}

// NewStaticSession creates a session over the given tables.
func NewStaticSession(tables map[string][]Row) *StaticSession {
	if tables == nil {
		tables = make(map[string][]Row)
	}
	return &StaticSession{
		tables: tables,
		errs:   make(map[string]error),
	}
}

// LoadFixture reads a JSON document of the form {"/ip/arp": [{"address": "..."}]}.
func LoadFixture(r io.Reader) (*StaticSession, error) {
	var tables map[string][]Row
	if err := json.NewDecoder(r).Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return NewStaticSession(tables), nil
}

// FailPath makes every query against path fail with err.
func (s *StaticSession) FailPath(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[path] = err
}

// Query returns copies of the rows at path that match every filter entry.
func (s *StaticSession) Query(ctx context.Context, path string, filter Filter) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.closed {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, path, ErrSessionClosed)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, path, err)
	}
	if err, ok := s.errs[path]; ok {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, path, err)
	}

	var out []Row
	for _, row := range s.tables[path] {
		if !matches(row, filter) {
			continue
		}
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

// Close marks the session closed.
func (s *StaticSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *StaticSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Calls returns the number of queries issued.
func (s *StaticSession) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func matches(row Row, filter Filter) bool {
	for key, want := range filter {
		if got, ok := row[key]; !ok || got != want {
			return false
		}
	}
	return true
}
