// Package dispatcher adapts the host action contract — a verb name, an
// options mapping, and positional arguments — onto the typed Go handlers
// held in the registry.
package dispatcher

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Dispatcher resolves verb names and invokes their handlers.
type Dispatcher struct {
	registry *registry.Registry
}

// New creates a Dispatcher over a populated registry.
func New(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Call invokes the handler registered for verb with the given options and
// positional arguments. On success the result is recorded as the session's
// last result before being returned.
func (d *Dispatcher) Call(ctx context.Context, run *session.Session, verb string, opts map[string]any, args ...any) (any, error) {
	logger := ctxlog.FromContext(ctx).With("verb", verb)

	action, ok := d.registry.Lookup(verb)
	if !ok {
		return nil, fmt.Errorf("unknown verb '%s'", verb)
	}

	input := action.NewInput()
	if input != nil {
		if err := decodeInput(input, opts, args); err != nil {
			return nil, fmt.Errorf("failed to decode arguments for verb '%s': %w", verb, err)
		}
	}
	logger.Debug("Calling action handler.", "args", len(args))

	handlerFunc := reflect.ValueOf(action.Fn)
	callArgs := []reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(run),
	}
	if input == nil {
		callArgs = append(callArgs, reflect.Zero(handlerFunc.Type().In(2)))
	} else {
		callArgs = append(callArgs, reflect.ValueOf(input))
	}

	results := handlerFunc.Call(callArgs)
	result, errResult := results[0].Interface(), results[1].Interface()
	if errResult != nil {
		return nil, errResult.(error)
	}

	run.SetLastResult(result)
	logger.Debug("Action handler finished.")
	return result, nil
}
