// Package session holds the per-run execution state shared between actions:
// the named-variable mapping and the last computed result.
//
// The session is owned by the host that dispatches actions; this module only
// mutates it through the assignment verbs and the dispatcher's result write.
// Dispatch itself is sequential, but an embedding host may inspect the session
// from another goroutine, so access is guarded.
package session

import (
	"sync"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scriptbasic/internal/convert"
)

// Session is the shared per-run context for a sequence of action calls.
type Session struct {
	mu         sync.RWMutex
	vars       map[string]any
	lastResult any
}

// New creates an empty session.
func New() *Session {
	return &Session{
		vars: make(map[string]any),
	}
}

// Set stores a value under both the bare name and its '$'-prefixed alias,
// so scripts can read either form.
func (s *Session) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
	s.vars["$"+name] = value
}

// Get returns the value stored under name and whether it exists.
func (s *Session) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// SetLastResult records the most recent action result.
func (s *Session) SetLastResult(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = v
}

// LastResult returns the most recent action result, or nil before any action
// has completed.
func (s *Session) LastResult() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// Len returns the number of stored keys, aliases included.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vars)
}

// Snapshot renders the variable mapping as a single cty object for use in
// script expression evaluation. The '$'-aliased keys are excluded because
// '$' is not a valid HCL identifier character; opaque Go values ride along
// as capsules.
func (s *Session) Snapshot() cty.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs := make(map[string]cty.Value, len(s.vars))
	for name, v := range s.vars {
		if len(name) > 0 && name[0] == '$' {
			continue
		}
		attrs[name] = convert.ToCty(v)
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(attrs)
}
