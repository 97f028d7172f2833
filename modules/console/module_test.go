package console

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

func TestConsoleLogReturnsValueUnchanged(t *testing.T) {
	d, sess := newDispatcher(t)

	tests := []struct {
		name  string
		value any
	}{
		{"string", "hello"},
		{"number", 1.5},
		{"map", map[string]any{"k": "v"}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := d.Call(context.Background(), sess, "console-log", nil, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, result)
		})
	}
}

func TestConsoleLogIsLastResult(t *testing.T) {
	d, sess := newDispatcher(t)

	_, err := d.Call(context.Background(), sess, "console-log", nil, "chained")
	require.NoError(t, err)
	assert.Equal(t, "chained", sess.LastResult())
}
