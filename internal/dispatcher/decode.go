package dispatcher

import (
	"fmt"
	"reflect"
	"strconv"
)

// decodeInput populates a handler's input struct from the host call shape.
// Positional arguments bind to fields tagged `arg:"0"`, `arg:"1"`, ...; a
// field tagged `arg:"rest"` collects every argument past the highest fixed
// index. Options bind to fields tagged `opt:"name"`. Missing arguments leave
// the zero value; the handlers themselves perform no further validation.
func decodeInput(input any, opts map[string]any, args []any) error {
	structVal := reflect.ValueOf(input)
	if structVal.Kind() != reflect.Pointer || structVal.IsNil() {
		return fmt.Errorf("input must be a non-nil pointer, got %T", input)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	maxFixed := -1
	restField := -1

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if tag, ok := field.Tag.Lookup("arg"); ok {
			if tag == "rest" {
				restField = i
				continue
			}
			idx, err := strconv.Atoi(tag)
			if err != nil {
				return fmt.Errorf("field %s has malformed arg tag %q", field.Name, tag)
			}
			if idx > maxFixed {
				maxFixed = idx
			}
			if idx >= len(args) {
				continue
			}
			if err := assignValue(fieldVal, args[idx]); err != nil {
				return fmt.Errorf("argument %d: %w", idx, err)
			}
			continue
		}

		if tag, ok := field.Tag.Lookup("opt"); ok {
			v, provided := opts[tag]
			if !provided {
				continue
			}
			if err := assignValue(fieldVal, v); err != nil {
				return fmt.Errorf("option '%s': %w", tag, err)
			}
		}
	}

	if restField >= 0 {
		start := maxFixed + 1
		if start > len(args) {
			start = len(args)
		}
		if err := assignRest(structVal.Field(restField), args[start:]); err != nil {
			return fmt.Errorf("trailing arguments: %w", err)
		}
	}

	return nil
}

// assignValue sets a struct field from a native value, converting across
// numeric kinds so script numbers (always float64) can land in int fields
// and vice versa.
func assignValue(dst reflect.Value, v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)

	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	if isNumericKind(dst.Kind()) && isNumericKind(rv.Kind()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	if dst.Kind() == reflect.Slice && rv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := assignValue(out.Index(i), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	}
	return fmt.Errorf("cannot use %T as %s", v, dst.Type())
}

// assignRest fills a variadic-tail field, which must be a slice type.
func assignRest(dst reflect.Value, rest []any) error {
	if dst.Kind() != reflect.Slice {
		return fmt.Errorf("rest field must be a slice, got %s", dst.Type())
	}
	out := reflect.MakeSlice(dst.Type(), len(rest), len(rest))
	for i, v := range rest {
		if err := assignValue(out.Index(i), v); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
