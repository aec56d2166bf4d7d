package host

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tsub/lang"
)

// Func is a function callable from template expressions. Arguments arrive
// fully evaluated and never empty. A returned error fails the enclosing
// expression.
type Func func(args []lang.Value) (lang.Value, error)

// Map is an in-memory [lang.Host] backed by name-keyed variable and
// function tables. The zero Map is empty and usable, but Bind and BindFunc
// require construction with [New] or [Builtins].
//
// A Map must not be mutated while an expansion that references it is
// running.
type Map struct {
	vars  map[string]lang.Value
	funcs map[string]Func
}

// New creates an empty Map.
func New() *Map {
	return &Map{
		vars:  make(map[string]lang.Value),
		funcs: make(map[string]Func),
	}
}

// Bind associates a variable name with a value, replacing any existing
// binding. It returns the receiver for chaining.
func (m *Map) Bind(name string, v lang.Value) *Map {
	m.vars[name] = v

	return m
}

// BindFunc associates a function name with an implementation, replacing any
// existing binding. It returns the receiver for chaining.
func (m *Map) BindFunc(name string, fn Func) *Map {
	m.funcs[name] = fn

	return m
}

// GetVariable implements [lang.Host].
func (m *Map) GetVariable(name string) (lang.Value, bool) {
	v, ok := m.vars[name]

	return v, ok
}

// ExecFunction implements [lang.Host]. An unknown name is an error that
// suggests the closest bound names, if any resemble it.
func (m *Map) ExecFunction(name string, args []lang.Value) (lang.Value, error) {
	fn, ok := m.funcs[name]
	if !ok {
		if hint := m.Suggest(name); len(hint) > 0 {
			return lang.Null(), fmt.Errorf(
				"unknown function %q (did you mean %s?)",
				name, strings.Join(hint, ", "),
			)
		}

		return lang.Null(), fmt.Errorf("unknown function %q", name)
	}

	return fn(args)
}

// maxSuggestions bounds the "did you mean" hint list.
const maxSuggestions = 3

// Suggest returns up to three bound names that fuzzily match name, ranked
// best-first.
func (m *Map) Suggest(name string) []string {
	names := make([]string, 0, len(m.vars)+len(m.funcs))

	for k := range m.vars {
		names = append(names, k)
	}

	for k := range m.funcs {
		names = append(names, k)
	}

	// Map iteration order is random; rank ties deterministically.
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	hint := make([]string, len(matches))
	for i, match := range matches {
		hint[i] = match.Str
	}

	return hint
}

// Names returns all bound variable and function names, sorted.
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.vars)+len(m.funcs))

	for k := range m.vars {
		names = append(names, k)
	}

	for k := range m.funcs {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}
