package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/session"
)

var (
	ctxType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	sessionType = reflect.TypeOf((*session.Session)(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Validate performs a strict contract check over every registered action,
// so a handler with the wrong shape fails at startup rather than at the
// first script that happens to invoke it.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for verb, action := range r.actions {
		if action.Fn == nil {
			errs = append(errs, fmt.Sprintf("verb '%s': no handler function registered", verb))
			continue
		}

		fnType := reflect.TypeOf(action.Fn)
		if fnType.Kind() != reflect.Func {
			errs = append(errs, fmt.Sprintf("verb '%s': handler is %s, not a function", verb, fnType.Kind()))
			continue
		}

		if fnType.NumIn() != 3 {
			errs = append(errs, fmt.Sprintf("verb '%s': handler takes %d parameters, want 3 (ctx, session, input)", verb, fnType.NumIn()))
			continue
		}
		if fnType.In(0) != ctxType {
			errs = append(errs, fmt.Sprintf("verb '%s': first handler parameter is %s, want context.Context", verb, fnType.In(0)))
		}
		if fnType.In(1) != sessionType {
			errs = append(errs, fmt.Sprintf("verb '%s': second handler parameter is %s, want *session.Session", verb, fnType.In(1)))
		}

		if action.InputType == nil {
			errs = append(errs, fmt.Sprintf("verb '%s': no input type registered", verb))
		} else if fnType.In(2) != reflect.PointerTo(action.InputType) {
			errs = append(errs, fmt.Sprintf("verb '%s': third handler parameter is %s, want *%s", verb, fnType.In(2), action.InputType))
		}

		if fnType.NumOut() != 2 {
			errs = append(errs, fmt.Sprintf("verb '%s': handler returns %d values, want 2 (result, error)", verb, fnType.NumOut()))
			continue
		}
		if fnType.Out(1) != errorType {
			errs = append(errs, fmt.Sprintf("verb '%s': second handler return is %s, want error", verb, fnType.Out(1)))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "verbs", len(r.actions))
	return nil
}
