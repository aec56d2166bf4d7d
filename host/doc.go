// Package host provides ready-made [lang.Host] implementations for the tsub
// command.
//
// [Map] binds variables and functions by name, [Builtins] populates a Map
// with the standard function set, and [LoadYAML] builds variable bindings
// from a YAML document.
package host
