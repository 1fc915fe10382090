package strategy

// Option is either a present GraphStrategy or the explicit absence of one.
// The zero value is absent.
type Option struct {
	strategy GraphStrategy
	present  bool
}

// Some wraps s as a present Option.
//
// Some(nil), including a typed nil pointer, is representable but invalid:
// holders reject it with graph.ErrNilStrategy.
func Some(s GraphStrategy) Option {
	return Option{strategy: s, present: true}
}

// None returns the absent Option.
func None() Option {
	return Option{}
}

// Get returns the strategy and whether it is present.
func (o Option) Get() (GraphStrategy, bool) {
	return o.strategy, o.present
}

// IsPresent reports whether o carries a strategy.
func (o Option) IsPresent() bool {
	return o.present
}

func (o Option) valid() bool {
	return !o.present || !isMissing(o.strategy)
}
