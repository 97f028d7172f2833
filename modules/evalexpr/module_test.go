package evalexpr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/scriptbasic/internal/dispatcher"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

func newDispatcher(t *testing.T) (*dispatcher.Dispatcher, *session.Session) {
	t.Helper()
	reg := registry.New()
	(&Module{}).Register(reg)
	require.NoError(t, reg.Validate(context.Background()))
	return dispatcher.New(reg), session.New()
}

func TestEvalConstantExpression(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "eval", nil, "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, float64(3), result)
}

func TestEvalBindsPositionalArgs(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "eval", nil, "a * b + c", 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, float64(10), result)
}

func TestEvalStructuredResult(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "eval", nil, "[a, a * 2]", 5)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(5), float64(10)}, result)
}

func TestEvalStringOperands(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "eval", nil, `"${a}-${b}"`, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "x-y", result)
}

func TestEvalDeferredEvaluator(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "eval", map[string]any{"function": true}, "a + b")
	require.NoError(t, err)

	evaluator, ok := result.(Evaluator)
	require.True(t, ok)

	// The evaluator is reusable with fresh bindings each call.
	v, err := evaluator(1, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)

	v, err = evaluator(10, 20)
	require.NoError(t, err)
	assert.Equal(t, float64(30), v)
}

func TestEvalMalformedExpression(t *testing.T) {
	d, sess := newDispatcher(t)

	_, err := d.Call(context.Background(), sess, "eval", nil, "1 +")
	require.Error(t, err)
}

func TestEvalUnboundVariable(t *testing.T) {
	d, sess := newDispatcher(t)

	_, err := d.Call(context.Background(), sess, "eval", nil, "a + b", 1)
	require.Error(t, err)
}
