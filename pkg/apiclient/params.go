package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// isoMillis mirrors the ISO-8601 form used for dates on the wire.
const isoMillis = "2006-01-02T15:04:05.000Z"

// NormalizeParams drops nil values, keeps sequences as repeated values and
// stringifies everything else with ParamToString.
func NormalizeParams(params map[string]any) url.Values {
	out := make(url.Values, len(params))
	for key, value := range params {
		if isNil(value) {
			continue
		}
		if items, ok := sequence(value); ok {
			vals := make([]string, 0, len(items))
			for _, item := range items {
				vals = append(vals, ParamToString(item))
			}
			out[key] = vals
			continue
		}
		out[key] = []string{ParamToString(value)}
	}
	return out
}

// ParamToString returns the wire representation of a single parameter value.
func ParamToString(param any) string {
	if isNil(param) {
		return ""
	}
	switch v := param.(type) {
	case time.Time:
		return v.UTC().Format(isoMillis)
	case *time.Time:
		return v.UTC().Format(isoMillis)
	case fmt.Stringer:
		return v.String()
	}
	if s, err := cast.ToStringE(param); err == nil {
		return s
	}
	return fmt.Sprint(param)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ParamValues returns the elements of a sequence parameter, or v alone.
func ParamValues(v any) []any {
	if items, ok := sequence(v); ok {
		return items
	}
	return []any{v}
}

// sequence reports whether v is a slice or array (other than raw bytes) and
// returns its elements.
func sequence(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
