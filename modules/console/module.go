package console

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'console-log' verb.
type Input struct {
	Value any `arg:"0"`
}

// OnConsoleLog prints the value to standard output and returns it unchanged,
// so a following action can keep working with it.
func OnConsoleLog(ctx context.Context, run *session.Session, input *Input) (any, error) {
	ctxlog.FromContext(ctx).Debug("Printing value.", "type", fmt.Sprintf("%T", input.Value))
	fmt.Println(input.Value)
	return input.Value, nil
}

// Register registers the verb with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("console-log", &registry.RegisteredAction{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnConsoleLog,
	})
}
