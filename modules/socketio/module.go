// Package socketio exposes the 'socket-io' verb: a one-shot socket.io
// exchange that connects, optionally emits, and resolves with the payload of
// a named event.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments and options for the 'socket-io' verb.
type Input struct {
	URL                string `arg:"0"`
	OnEvent            string `arg:"1"`
	Namespace          string `opt:"namespace"`
	EmitEvent          string `opt:"emit_event"`
	EmitData           any    `opt:"emit_data"`
	Timeout            string `opt:"timeout"`
	InsecureSkipVerify bool   `opt:"insecure_skip_verify"`
}

// exchange carries the outcome of the socket round trip through the done
// channel.
type exchange struct {
	payload any
	err     error
}

// OnSocketIO connects to the URL over websocket, emits the configured event
// once connected, and suspends until the awaited event arrives or the
// timeout lapses.
func OnSocketIO(ctx context.Context, run *session.Session, input *Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("verb", "socket-io", "url", input.URL, "onEvent", input.OnEvent)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	timeout, err := time.ParseDuration(input.Timeout)
	if err != nil {
		timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if input.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	var isConnected atomic.Bool
	done := make(chan exchange, 1)
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(input.Namespace, opts)
	defer io.Disconnect()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected", "namespace", input.Namespace, "sid", io.Id())
		if input.EmitEvent != "" {
			logger.Debug("Emitting event", "event", input.EmitEvent)
			io.Emit(input.EmitEvent, input.EmitData)
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		done <- exchange{err: errs[0].(error)}
	})

	io.On(types.EventName(input.OnEvent), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		done <- exchange{payload: payload}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", input.OnEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.payload, res.err
	}
}

// Register registers the verb with the host registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("socket-io", &registry.RegisteredAction{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnSocketIO,
	})
}
