package assign

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

func TestAsStoresUnderBothNames(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "as", nil, "x", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	v, ok := sess.Get("$x")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = sess.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestAssignAlias(t *testing.T) {
	d, sess := newDispatcher(t)

	result, err := d.Call(context.Background(), sess, "assign", nil, "greeting", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)

	v, _ := sess.Get("$greeting")
	assert.Equal(t, "hello", v)
}

func TestAssignIsLastResult(t *testing.T) {
	d, sess := newDispatcher(t)

	_, err := d.Call(context.Background(), sess, "as", nil, "x", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, sess.LastResult())
}
