package timing

import (
	"context"
	"testing"
	"time"

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

func TestWaitZeroReturnsPreviousResult(t *testing.T) {
	d, sess := newDispatcher(t)
	sess.SetLastResult("before")

	start := time.Now()
	result, err := d.Call(context.Background(), sess, "wait", nil, 0)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, "before", result)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
}

func TestWaitFractionalSeconds(t *testing.T) {
	d, sess := newDispatcher(t)
	sess.SetLastResult(7)

	start := time.Now()
	result, err := d.Call(context.Background(), sess, "wait", nil, 0.05)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 7, result)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}

func TestWaitCancelledByContext(t *testing.T) {
	d, sess := newDispatcher(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Call(ctx, sess, "wait", nil, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitKeepsCallTimeResult(t *testing.T) {
	// The wait result is whatever the session held when the wait began,
	// even if the handler's own completion would overwrite it afterwards.
	d, sess := newDispatcher(t)
	sess.SetLastResult("first")

	result, err := d.Call(context.Background(), sess, "wait", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", result)
	assert.Equal(t, "first", sess.LastResult())
}
