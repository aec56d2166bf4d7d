// Package cli contains the command line interface for tsub.
//
// The CLI expands templates from arguments, files, or stdin, and provides
// logging and profiling configuration:
//
//	tsub 'app-`[1..4]`.log'
//	tsub --vars vars.yaml --log-level=debug expand 'srv`[n, m]`.example.com'
//	tsub repl
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
