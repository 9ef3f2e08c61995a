package analysis

// Outcome is the result of a call to the language model. A degraded outcome
// carries the documented default in Value and the reason in Cause; callers
// never receive an error from this package.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Cause    error
}

// Ok wraps a value produced by the model.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Fallback wraps the default used when the model call or its output failed.
func Fallback[T any](v T, cause error) Outcome[T] {
	return Outcome[T]{Value: v, Degraded: true, Cause: cause}
}
