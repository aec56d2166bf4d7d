// Package lang implements the tsub template language: an expression
// evaluator and a template expander that together turn one template into a
// set of concrete strings.
//
// A template is ordinary text with expression regions delimited by
// backticks. Each region is parsed and evaluated in a single pass, yielding
// a number, a string, or a list. A list multiplies the output set: the
// expander folds every value into its working results as a Cartesian
// product with the surrounding text segments.
//
//	outs, err := lang.Run(nil, "c`[1..3]`.http")
//	// outs == []string{"c1.http", "c2.http"}
//
// Variables and functions are resolved through the [Host] interface; when
// no host is supplied, any name reference is an error. See the host package
// for a name-keyed implementation with built-in functions.
package lang
