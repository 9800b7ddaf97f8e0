package apiclient

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Coerce converts decoded JSON into the declared shape. nil stays nil, unknown
// primitive names and unregistered model tags return data unchanged.
func (r *Registry) Coerce(data any, shape Shape) (any, error) {
	if data == nil {
		return nil, nil
	}

	switch shape.kind {
	case KindPrimitive:
		return coercePrimitive(data, shape.name)
	case KindSequence:
		elem, _ := shape.Elem()
		items, ok := data.([]any)
		if !ok {
			return nil, &CoercionError{Shape: shape.String(), Value: data, Err: fmt.Errorf("not a sequence")}
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := r.Coerce(item, elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case KindModel:
		decoder, ok := r.DecoderFor(shape.name)
		if !ok {
			return data, nil
		}
		v, err := decoder(data)
		if err != nil {
			return nil, &CoercionError{Shape: shape.String(), Value: data, Err: err}
		}
		return v, nil
	default:
		return data, nil
	}
}

func coercePrimitive(data any, name string) (any, error) {
	var (
		v   any
		err error
	)
	switch name {
	case Boolean:
		v = truthy(data)
	case Integer:
		v, err = toInteger(data)
	case Number:
		v, err = toNumber(data)
	case String:
		v, err = toString(data)
	case Date:
		v, err = toDate(data)
	default:
		// Blob and unknown names.
		return data, nil
	}
	if err != nil {
		return nil, &CoercionError{Shape: name, Value: data, Err: err}
	}
	return v, nil
}

// truthy follows JSON-value truthiness: false, 0, NaN and "" are false,
// everything else (objects and arrays included) is true.
func truthy(data any) bool {
	switch v := data.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	case nil:
		return false
	}
	if f, err := cast.ToFloat64E(data); err == nil {
		return f != 0
	}
	return true
}

// toInteger reads strings by their leading integer, so "42abc" is 42 and
// "7.8" is 7. Booleans and objects are rejected.
func toInteger(data any) (int64, error) {
	switch v := data.(type) {
	case string:
		return leadingInteger(v)
	case bool:
		return 0, fmt.Errorf("boolean is not an integer")
	}
	return cast.ToInt64E(data)
}

func leadingInteger(s string) (int64, error) {
	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		end := 2
		for end < len(s) && strings.IndexByte("0123456789abcdefABCDEF", s[end]) >= 0 {
			end++
		}
		if end > 2 {
			return strconv.ParseInt(sign+s[2:end], 16, 64)
		}
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("no leading digits in %q", s)
	}
	return strconv.ParseInt(sign+s[:end], 10, 64)
}

// toString falls back to JSON text for objects and arrays.
func toString(data any) (string, error) {
	if str, err := cast.ToStringE(data); err == nil {
		return str, nil
	}
	return codec.MarshalToString(data)
}

func toNumber(data any) (float64, error) {
	if s, ok := data.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return cast.ToFloat64E(data)
}

// toDate treats numbers as Unix milliseconds and strings as timestamps.
func toDate(data any) (time.Time, error) {
	switch v := data.(type) {
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(n).UTC(), nil
	}
	return cast.ToTimeE(data)
}
