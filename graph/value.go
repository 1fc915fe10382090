package graph

import (
	"context"
	"fmt"
)

// Value reads the property key of element and returns its value as T.
//
// The read goes through Element.Property, so it is subject to the active strategy.
// Returns ErrPropertyNotFound when the property is absent and ErrPropertyValueType
// when the stored value is not a T.
func Value[T any](ctx context.Context, element Element, key string) (T, error) {
	var zero T

	property, err := element.Property(ctx, key)
	if err != nil {
		return zero, err
	}

	if !property.IsPresent() {
		return zero, fmt.Errorf("%w: key %q", ErrPropertyNotFound, key)
	}

	typed, ok := property.Value().(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %T", ErrPropertyValueType, key, property.Value(), zero)
	}

	return typed, nil
}
