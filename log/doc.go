// Package log provides a concurrency-safe structured logging facade over
// [log/slog] for the tsub command and engine.
//
// A [Logger] is configured with functional options ([WithLevel],
// [WithFormat], [WithTimeLayout], [WithCaller], [WithPretty], and
// [WithOutput]) and adds a Trace level below slog's Debug. The package
// also maintains a default logger used by the package-level functions;
// [Config] reconfigures it, which the CLI does while parsing flags so that
// diagnostics emitted during parsing already honor the requested format.
//
// The zero Logger discards all messages, so library code can accept a
// Logger value without nil checks.
package log
