// Package evalexpr exposes the 'eval' verb. Parsing and evaluation are
// delegated entirely to the HCL expression engine; this module only maps
// positional arguments onto single-letter free variables.
package evalexpr

import (
	"context"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/scriptbasic/internal/convert"
	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'eval' verb.
type Input struct {
	Expression string `arg:"0"`
	Bindings   []any  `arg:"rest"`
	AsFunction bool   `opt:"function"`
}

// Evaluator is a reusable compiled expression, returned when the 'function'
// option is set. Each invocation binds a fresh argument list.
type Evaluator func(args ...any) (any, error)

// OnEval parses the expression and either evaluates it against the bound
// arguments or, with the 'function' option, returns a deferred Evaluator.
// Positional arguments bind to the free variables 'a', 'b', 'c', ... in
// order. Malformed expressions surface as parse diagnostics.
func OnEval(ctx context.Context, run *session.Session, input *Input) (any, error) {
	ctxlog.FromContext(ctx).Debug("Evaluating expression.", "expression", input.Expression, "deferred", input.AsFunction)

	expr, diags := hclsyntax.ParseExpression([]byte(input.Expression), "eval", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	if input.AsFunction {
		return Evaluator(func(args ...any) (any, error) {
			return evaluate(expr, args)
		}), nil
	}
	return evaluate(expr, input.Bindings)
}

// evaluate binds args to a..z and resolves the expression to a native value.
func evaluate(expr hcl.Expression, args []any) (any, error) {
	vars := make(map[string]cty.Value, len(args))
	for i, arg := range args {
		if i >= 26 {
			break
		}
		vars[string(rune('a'+i))] = convert.ToCty(arg)
	}

	val, diags := expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return nil, diags
	}
	return convert.FromCty(val)
}

// Register registers the verb with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("eval", &registry.RegisteredAction{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnEval,
	})
}
