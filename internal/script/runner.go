package script

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scriptbasic/internal/convert"
	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/dispatcher"
	"github.com/vk/scriptbasic/internal/session"
)

// Runner executes a loaded pipeline sequentially through the dispatcher.
// Execution is single-threaded and cooperative: each step runs to completion
// (or to its suspension's end) before the next one starts.
type Runner struct {
	dispatcher *dispatcher.Dispatcher
}

// NewRunner creates a Runner over a dispatcher.
func NewRunner(d *dispatcher.Dispatcher) *Runner {
	return &Runner{dispatcher: d}
}

// Run dispatches each step in order against the shared session. The first
// failing step aborts the run; there is no retry or partial-failure handling.
func (r *Runner) Run(ctx context.Context, run *session.Session, steps []*Step) error {
	logger := ctxlog.FromContext(ctx)

	for _, step := range steps {
		stepLogger := logger.With("verb", step.Verb, "name", step.Name)
		stepLogger.Info("▶️ Starting action")

		evalCtx := r.buildEvalContext(run)
		args, opts, err := resolveStep(step, evalCtx)
		if err != nil {
			return fmt.Errorf("action '%s' (%s): %w", step.Name, step.Verb, err)
		}

		if _, err := r.dispatcher.Call(ctx, run, step.Verb, opts, args...); err != nil {
			return fmt.Errorf("action '%s' (%s): %w", step.Name, step.Verb, err)
		}
		stepLogger.Info("✅ Finished action")
	}
	return nil
}

// buildEvalContext exposes the session to step expressions: `vars` holds the
// named variables and `result` the previous step's result.
func (r *Runner) buildEvalContext(run *session.Session) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"vars":   run.Snapshot(),
			"result": convert.ToCty(run.LastResult()),
		},
	}
}

// resolveStep evaluates a step's arg and option expressions to native values.
func resolveStep(step *Step, evalCtx *hcl.EvalContext) ([]any, map[string]any, error) {
	var args []any
	if step.Args != nil {
		val, diags := step.Args.Value(evalCtx)
		if diags.HasErrors() {
			return nil, nil, diags
		}
		if !val.CanIterateElements() {
			return nil, nil, fmt.Errorf("args must be a list, got %s", val.Type().FriendlyName())
		}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := convert.FromCty(elem)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, native)
		}
	}

	var opts map[string]any
	if len(step.Options) > 0 {
		opts = make(map[string]any, len(step.Options))
		for name, expr := range step.Options {
			val, diags := expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, nil, diags
			}
			native, err := convert.FromCty(val)
			if err != nil {
				return nil, nil, err
			}
			opts[name] = native
		}
	}

	return args, opts, nil
}
