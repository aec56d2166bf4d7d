package lang

// Host resolves the variable and function names an expression may
// reference. The evaluator consults it at evaluation time and never caches
// results across calls.
//
// Implementations must not mutate engine state from within a callback; a
// callback runs synchronously on the calling goroutine of [Run].
type Host interface {
	// GetVariable returns the value bound to name, or false when the name
	// is unknown.
	GetVariable(name string) (Value, bool)

	// ExecFunction invokes the named function with the evaluated argument
	// list. Arguments are never empty: the grammar rejects empty argument
	// lists. A returned error fails the enclosing expression.
	ExecFunction(name string, args []Value) (Value, error)
}
