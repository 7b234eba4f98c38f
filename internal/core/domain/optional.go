package domain

// Optional holds a value together with a presence marker so callers can tell
// "not provided" apart from a zero or nil value.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Value returns the held value, or the zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}
