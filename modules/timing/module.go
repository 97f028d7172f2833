package timing

import (
	"context"
	"reflect"
	"time"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'wait' verb. Fractional seconds are
// allowed.
type Input struct {
	Seconds float64 `arg:"0"`
}

// OnWait suspends for the given duration and then returns whatever the
// session held as its last result when the wait began. There is no drift
// correction and no queueing; cancelling the host context aborts the wait.
func OnWait(ctx context.Context, run *session.Session, input *Input) (any, error) {
	previous := run.LastResult()
	d := time.Duration(input.Seconds * float64(time.Second))
	ctxlog.FromContext(ctx).Debug("Waiting.", "duration", d)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return previous, nil
	}
}

// Register registers the verb with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("wait", &registry.RegisteredAction{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnWait,
	})
}
