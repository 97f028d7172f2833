package mathx

import (
	"context"
	"math"
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

func TestRoundingVerbs(t *testing.T) {
	tests := []struct {
		verb string
		in   float64
		want float64
	}{
		{"abs", -5.1, 5.1},
		{"abs", 5.1, 5.1},
		{"ceil", 5.1, 6},
		{"floor", 5.1, 5},
		{"round", 1.3, 1},
		{"round", 1.5, 2},
		{"trunc", 1.3, 1},
		{"trunc", -1.7, -1},
	}

	d, sess := newDispatcher(t)
	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			got, err := d.Call(context.Background(), sess, tt.verb, nil, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinMax(t *testing.T) {
	d, sess := newDispatcher(t)

	got, err := d.Call(context.Background(), sess, "max", nil, 5.1, 1.2, 3.3)
	require.NoError(t, err)
	assert.Equal(t, 5.1, got)

	got, err = d.Call(context.Background(), sess, "min", nil, 5.1, 1.2, 3.3)
	require.NoError(t, err)
	assert.Equal(t, 1.2, got)
}

func TestMinMaxEmpty(t *testing.T) {
	d, sess := newDispatcher(t)

	got, err := d.Call(context.Background(), sess, "min", nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.(float64), 1))

	got, err = d.Call(context.Background(), sess, "max", nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.(float64), -1))
}

func TestPow(t *testing.T) {
	d, sess := newDispatcher(t)

	got, err := d.Call(context.Background(), sess, "pow", nil, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, float64(125), got)
}

func TestRandomRange(t *testing.T) {
	d, sess := newDispatcher(t)

	for i := 0; i < 100; i++ {
		got, err := d.Call(context.Background(), sess, "random", nil)
		require.NoError(t, err)
		v := got.(float64)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
