// Package events exposes the event-subscription verbs. The event primitive
// itself is external: sources are engine.io event emitters, and the verbs
// delegate registration and emission straight to them without adding any
// buffering or ordering of their own.
package events

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zishang520/engine.io/v2/types"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnceInput defines the arguments for the 'once' verb.
type OnceInput struct {
	Source any    `arg:"0"`
	Event  string `arg:"1"`
}

// OnInput defines the arguments for the 'on' verb.
type OnInput struct {
	Source   any    `arg:"0"`
	Event    string `arg:"1"`
	Callback any    `arg:"2"`
}

// EmitInput defines the arguments for the 'emit' verb.
type EmitInput struct {
	Source any    `arg:"0"`
	Event  string `arg:"1"`
	Args   []any  `arg:"rest"`
}

// EmitterInput is empty; 'emitter' takes no arguments.
type EmitterInput struct{}

// asSource asserts that an argument is an event emitter.
func asSource(v any) (types.EventEmitter, error) {
	src, ok := v.(types.EventEmitter)
	if !ok {
		return nil, fmt.Errorf("value of type %T is not an event source", v)
	}
	return src, nil
}

// OnOnce registers a one-shot listener and suspends until the named event
// fires, resolving with the emitted argument slice. Once issued the
// subscription cannot be withdrawn; only the host context can abandon it.
func OnOnce(ctx context.Context, run *session.Session, input *OnceInput) (any, error) {
	src, err := asSource(input.Source)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Waiting for event.", "event", input.Event)

	fired := make(chan []any, 1)
	src.Once(types.EventName(input.Event), func(args ...any) {
		select {
		case fired <- args:
		default:
		}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case args := <-fired:
		return args, nil
	}
}

// OnOn registers a persistent listener and returns the source immediately.
// The callback must be a func(...any).
func OnOn(ctx context.Context, run *session.Session, input *OnInput) (any, error) {
	src, err := asSource(input.Source)
	if err != nil {
		return nil, err
	}
	callback, ok := input.Callback.(func(...any))
	if !ok {
		return nil, fmt.Errorf("callback of type %T is not a func(...any)", input.Callback)
	}
	ctxlog.FromContext(ctx).Debug("Registering listener.", "event", input.Event)

	src.On(types.EventName(input.Event), func(args ...any) {
		callback(args...)
	})
	return input.Source, nil
}

// OnEmit fires the named event with any trailing arguments and returns the
// source.
func OnEmit(ctx context.Context, run *session.Session, input *EmitInput) (any, error) {
	src, err := asSource(input.Source)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Emitting event.", "event", input.Event, "args", len(input.Args))

	src.Emit(types.EventName(input.Event), input.Args...)
	return input.Source, nil
}

// OnEmitter mints a fresh event source. Scripts store it with 'as' and hand
// it to 'on', 'once', and 'emit'.
func OnEmitter(ctx context.Context, run *session.Session, input *EmitterInput) (any, error) {
	return types.NewEventEmitter(), nil
}

// Register registers the verbs with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("once", &registry.RegisteredAction{
		NewInput:  func() any { return new(OnceInput) },
		InputType: reflect.TypeOf(OnceInput{}),
		Fn:        OnOnce,
	})
	r.Register("on", &registry.RegisteredAction{
		NewInput:  func() any { return new(OnInput) },
		InputType: reflect.TypeOf(OnInput{}),
		Fn:        OnOn,
	})
	r.Register("emit", &registry.RegisteredAction{
		NewInput:  func() any { return new(EmitInput) },
		InputType: reflect.TypeOf(EmitInput{}),
		Fn:        OnEmit,
	})
	r.Register("emitter", &registry.RegisteredAction{
		NewInput:  func() any { return new(EmitterInput) },
		InputType: reflect.TypeOf(EmitterInput{}),
		Fn:        OnEmitter,
	})
}
