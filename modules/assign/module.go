package assign

import (
	"context"
	"reflect"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'as' and 'assign' verbs.
type Input struct {
	Name  string `arg:"0"`
	Value any    `arg:"1"`
}

// OnAssign stores the value in the session under both the bare name and its
// '$'-prefixed alias, and returns the value.
func OnAssign(ctx context.Context, run *session.Session, input *Input) (any, error) {
	ctxlog.FromContext(ctx).Debug("Assigning variable.", "name", input.Name)
	run.Set(input.Name, input.Value)
	return input.Value, nil
}

// Register registers both verb spellings against the same handler.
func (m *Module) Register(r *registry.Registry) {
	action := &registry.RegisteredAction{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnAssign,
	}
	r.Register("as", action)
	r.Register("assign", action)
}
