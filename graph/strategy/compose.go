package strategy

import "context"

// UnaryOperator transforms a function into a function of the same shape.
type UnaryOperator[T any] func(T) T

// Identity returns the UnaryOperator that hands its input back unchanged.
func Identity[T any]() UnaryOperator[T] {
	return func(impl T) T { return impl }
}

// Compose returns the effective behavior of an operation.
//
// When holder has an active strategy for ctx, selector picks the hook of that strategy, and the
// resulting transformation is applied to impl once. Without an active strategy impl itself is returned.
func Compose[T any](
	ctx context.Context,
	holder Holder,
	selector func(GraphStrategy) UnaryOperator[T],
	impl T,
) T {

	s, ok := holder.Strategy(ctx).Get()
	if !ok {
		return impl
	}

	return selector(s)(impl)
}
