package apiclient

import (
	"context"
	"fmt"
)

// As returns res.Data as T. A nil Data yields the zero T without error.
func As[T any](res *CallResult) (T, error) {
	var zero T
	if res == nil || res.Data == nil {
		return zero, nil
	}
	v, ok := res.Data.(T)
	if !ok {
		return zero, fmt.Errorf("call result holds %T, not %T", res.Data, zero)
	}
	return v, nil
}

// InvokeAs is Invoke followed by As.
func InvokeAs[T any](ctx context.Context, c *Client, spec CallSpec) (T, *CallResult, error) {
	var zero T
	res, err := c.Invoke(ctx, spec)
	if err != nil {
		return zero, nil, err
	}
	v, err := As[T](res)
	if err != nil {
		return zero, res, err
	}
	return v, res, nil
}
