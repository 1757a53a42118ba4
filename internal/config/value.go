package config

// Value holds a configuration field that the caller supplies either as
// a literal or as a transform of the built-in default. The zero Value
// resolves to the default unchanged.
type Value[T any] struct {
	literal T
	set     bool
	derive  func(T) T
}

// Literal returns a Value that resolves to v.
func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// Derive returns a Value that resolves by applying fn to the default.
func Derive[T any](fn func(def T) T) Value[T] {
	return Value[T]{derive: fn}
}

// Resolve produces the effective value for the given default.
func (v Value[T]) Resolve(def T) T {
	switch {
	case v.derive != nil:
		return v.derive(def)
	case v.set:
		return v.literal
	default:
		return def
	}
}

// IsSet reports whether the value was supplied by the caller.
func (v Value[T]) IsSet() bool {
	return v.set || v.derive != nil
}
