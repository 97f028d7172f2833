package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Module is the interface every action module implements to expose its verbs.
type Module interface {
	Register(r *Registry)
}

// RegisteredAction holds the compiled Go parts of a single verb.
type RegisteredAction struct {
	// NewInput returns a fresh pointer to the handler's input struct.
	NewInput func() any
	// InputType is the (non-pointer) type of the input struct, used for
	// contract validation and positional-argument decoding.
	InputType reflect.Type
	// Fn is the handler, of shape
	// func(ctx context.Context, run *session.Session, input *T) (any, error).
	Fn any
}

// Registry maps verb names to their registered actions.
type Registry struct {
	actions map[string]*RegisteredAction
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		actions: make(map[string]*RegisteredAction),
	}
}

// Register binds a verb name to an action. Registering the same verb twice is
// a programmer error and panics. Two verbs may share one action (aliases).
func (r *Registry) Register(verb string, action *RegisteredAction) {
	if _, exists := r.actions[verb]; exists {
		panic(fmt.Sprintf("action for verb '%s' already registered", verb))
	}
	slog.Debug("Registering action handler.", "verb", verb)
	r.actions[verb] = action
}

// Lookup returns the action bound to a verb name.
func (r *Registry) Lookup(verb string) (*RegisteredAction, bool) {
	action, ok := r.actions[verb]
	return action, ok
}

// Verbs returns all registered verb names in sorted order.
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.actions))
	for verb := range r.actions {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}
