package dispatcher

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

type echoInput struct {
	First  string  `arg:"0"`
	Second float64 `arg:"1"`
	Rest   []any   `arg:"rest"`
	Flag   bool    `opt:"flag"`
}

func echoHandler(ctx context.Context, run *session.Session, input *echoInput) (any, error) {
	return map[string]any{
		"first":  input.First,
		"second": input.Second,
		"rest":   input.Rest,
		"flag":   input.Flag,
	}, nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *session.Session) {
	t.Helper()
	reg := registry.New()
	reg.Register("echo", &registry.RegisteredAction{
		NewInput:  func() any { return new(echoInput) },
		InputType: reflect.TypeOf(echoInput{}),
		Fn:        echoHandler,
	})
	reg.Register("fail", &registry.RegisteredAction{
		NewInput:  func() any { return new(echoInput) },
		InputType: reflect.TypeOf(echoInput{}),
		Fn: func(ctx context.Context, run *session.Session, input *echoInput) (any, error) {
			return nil, errors.New("boom")
		},
	})
	require.NoError(t, reg.Validate(context.Background()))
	return New(reg), session.New()
}

func TestCallDecodesPositionalArgs(t *testing.T) {
	d, sess := newTestDispatcher(t)

	result, err := d.Call(context.Background(), sess, "echo", nil, "hello", 2.5, "x", "y")
	require.NoError(t, err)

	got := result.(map[string]any)
	assert.Equal(t, "hello", got["first"])
	assert.Equal(t, 2.5, got["second"])
	assert.Equal(t, []any{"x", "y"}, got["rest"])
	assert.Equal(t, false, got["flag"])
}

func TestCallDecodesOptions(t *testing.T) {
	d, sess := newTestDispatcher(t)

	result, err := d.Call(context.Background(), sess, "echo", map[string]any{"flag": true}, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, true, result.(map[string]any)["flag"])
}

func TestCallCoercesNumericKinds(t *testing.T) {
	d, sess := newTestDispatcher(t)

	// Script numbers always arrive as float64; embedded callers may pass ints.
	result, err := d.Call(context.Background(), sess, "echo", nil, "a", 3)
	require.NoError(t, err)
	assert.Equal(t, float64(3), result.(map[string]any)["second"])
}

func TestCallMissingArgsLeaveZeroValues(t *testing.T) {
	d, sess := newTestDispatcher(t)

	result, err := d.Call(context.Background(), sess, "echo", nil)
	require.NoError(t, err)

	got := result.(map[string]any)
	assert.Equal(t, "", got["first"])
	assert.Equal(t, float64(0), got["second"])
	assert.Empty(t, got["rest"])
}

func TestCallTypeMismatchErrors(t *testing.T) {
	d, sess := newTestDispatcher(t)

	_, err := d.Call(context.Background(), sess, "echo", nil, []string{"not a string"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode arguments")
}

func TestCallUnknownVerb(t *testing.T) {
	d, sess := newTestDispatcher(t)

	_, err := d.Call(context.Background(), sess, "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown verb")
}

func TestCallRecordsLastResultOnSuccess(t *testing.T) {
	d, sess := newTestDispatcher(t)

	result, err := d.Call(context.Background(), sess, "echo", nil, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, result, sess.LastResult())
}

func TestCallLeavesLastResultOnFailure(t *testing.T) {
	d, sess := newTestDispatcher(t)
	sess.SetLastResult("before")

	_, err := d.Call(context.Background(), sess, "fail", nil)
	require.EqualError(t, err, "boom")
	assert.Equal(t, "before", sess.LastResult())
}

func TestDecodeInputRejectsNonPointer(t *testing.T) {
	err := decodeInput(echoInput{}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-nil pointer")
}

func TestDecodeInputRestAfterFixed(t *testing.T) {
	input := &echoInput{}
	err := decodeInput(input, nil, []any{"a", 1.0, "tail1", "tail2"})
	require.NoError(t, err)
	assert.Equal(t, []any{"tail1", "tail2"}, input.Rest)
}

func TestDecodeInputRestOnly(t *testing.T) {
	type spread struct {
		Values []float64 `arg:"rest"`
	}
	input := &spread{}
	err := decodeInput(input, nil, []any{1.0, 2, 3.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5}, input.Values)
}
