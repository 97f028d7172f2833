// Package convert bridges between native Go values and the cty values used
// by script expressions. Values with no cty representation (event sources,
// evaluator functions) are carried opaquely inside a capsule so they survive
// a round trip through an expression context.
package convert

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Opaque is the capsule type wrapping Go values that cty cannot express.
var Opaque = cty.Capsule("opaque", reflect.TypeOf((*any)(nil)).Elem())

// ToCty converts a native Go value into a cty.Value. It never fails: values
// outside cty's type system come back as an Opaque capsule.
func ToCty(v any) cty.Value {
	switch tv := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case cty.Value:
		return tv
	case bool:
		return cty.BoolVal(tv)
	case string:
		return cty.StringVal(tv)
	case map[string]any:
		if len(tv) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(tv))
		for k, elem := range tv {
			attrs[k] = ToCty(elem)
		}
		return cty.ObjectVal(attrs)
	case []any:
		if len(tv) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(tv))
		for i, elem := range tv {
			elems[i] = ToCty(elem)
		}
		return cty.TupleVal(elems)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cty.NumberIntVal(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cty.NumberUIntVal(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return cty.NumberFloatVal(rv.Float())
	}

	// Homogeneous maps and slices of concrete types still convert cleanly.
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		if impliedType, err := gocty.ImpliedType(v); err == nil {
			if converted, err := gocty.ToCtyValue(v, impliedType); err == nil {
				return converted
			}
		}
	}

	return cty.CapsuleVal(Opaque, &v)
}

// FromCty converts a cty.Value back into a native Go value. Numbers come back
// as float64, objects and maps as map[string]any, lists and tuples as []any,
// and Opaque capsules as the Go value they wrap.
func FromCty(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	t := val.Type()
	switch {
	case t == cty.String:
		return val.AsString(), nil
	case t == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case t == cty.Bool:
		return val.True(), nil
	case t.IsCapsuleType():
		if wrapped, ok := val.EncapsulatedValue().(*any); ok {
			return *wrapped, nil
		}
		return nil, fmt.Errorf("unsupported capsule type: %s", t.FriendlyName())
	case t.IsObjectType() || t.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			elem, err := FromCty(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = elem
		}
		return out, nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		var out []any
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			elem, err := FromCty(v)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty type for conversion: %s", t.FriendlyName())
}
