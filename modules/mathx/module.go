// Package mathx exposes the numeric helper verbs, each a one-to-one call
// onto the standard math package.
package mathx

import (
	"context"
	"math"
	"math/rand/v2"
	"reflect"

	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// UnaryInput defines the single-number argument shared by the rounding verbs.
type UnaryInput struct {
	Value float64 `arg:"0"`
}

// SpreadInput defines the variable-length number list for 'min' and 'max'.
type SpreadInput struct {
	Values []float64 `arg:"rest"`
}

// PowInput defines the arguments for 'pow'.
type PowInput struct {
	Base     float64 `arg:"0"`
	Exponent float64 `arg:"1"`
}

// RandomInput is empty; 'random' takes no arguments.
type RandomInput struct{}

// OnAbs returns the absolute value.
func OnAbs(ctx context.Context, run *session.Session, input *UnaryInput) (any, error) {
	return math.Abs(input.Value), nil
}

// OnCeil rounds up to the nearest integer.
func OnCeil(ctx context.Context, run *session.Session, input *UnaryInput) (any, error) {
	return math.Ceil(input.Value), nil
}

// OnFloor rounds down to the nearest integer.
func OnFloor(ctx context.Context, run *session.Session, input *UnaryInput) (any, error) {
	return math.Floor(input.Value), nil
}

// OnRound rounds half away from zero.
func OnRound(ctx context.Context, run *session.Session, input *UnaryInput) (any, error) {
	return math.Round(input.Value), nil
}

// OnTrunc drops the fractional part.
func OnTrunc(ctx context.Context, run *session.Session, input *UnaryInput) (any, error) {
	return math.Trunc(input.Value), nil
}

// OnMin returns the smallest of the given numbers, or +Inf for none.
func OnMin(ctx context.Context, run *session.Session, input *SpreadInput) (any, error) {
	m := math.Inf(1)
	for _, v := range input.Values {
		m = math.Min(m, v)
	}
	return m, nil
}

// OnMax returns the largest of the given numbers, or -Inf for none.
func OnMax(ctx context.Context, run *session.Session, input *SpreadInput) (any, error) {
	m := math.Inf(-1)
	for _, v := range input.Values {
		m = math.Max(m, v)
	}
	return m, nil
}

// OnPow raises base to the exponent.
func OnPow(ctx context.Context, run *session.Session, input *PowInput) (any, error) {
	return math.Pow(input.Base, input.Exponent), nil
}

// OnRandom returns a pseudo-random number in [0, 1).
func OnRandom(ctx context.Context, run *session.Session, input *RandomInput) (any, error) {
	return rand.Float64(), nil
}

// Register registers the verbs with the host registry.
func (m *Module) Register(r *registry.Registry) {
	unary := func(fn any) *registry.RegisteredAction {
		return &registry.RegisteredAction{
			NewInput:  func() any { return new(UnaryInput) },
			InputType: reflect.TypeOf(UnaryInput{}),
			Fn:        fn,
		}
	}
	spread := func(fn any) *registry.RegisteredAction {
		return &registry.RegisteredAction{
			NewInput:  func() any { return new(SpreadInput) },
			InputType: reflect.TypeOf(SpreadInput{}),
			Fn:        fn,
		}
	}

	r.Register("abs", unary(OnAbs))
	r.Register("ceil", unary(OnCeil))
	r.Register("floor", unary(OnFloor))
	r.Register("round", unary(OnRound))
	r.Register("trunc", unary(OnTrunc))
	r.Register("min", spread(OnMin))
	r.Register("max", spread(OnMax))
	r.Register("pow", &registry.RegisteredAction{
		NewInput:  func() any { return new(PowInput) },
		InputType: reflect.TypeOf(PowInput{}),
		Fn:        OnPow,
	})
	r.Register("random", &registry.RegisteredAction{
		NewInput:  func() any { return new(RandomInput) },
		InputType: reflect.TypeOf(RandomInput{}),
		Fn:        OnRandom,
	})
}
