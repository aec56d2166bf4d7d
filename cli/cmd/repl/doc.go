// Package repl implements the interactive template expansion loop.
//
// Each entered line is expanded as a template and its outputs are printed
// above the prompt. Lines beginning with ':' are control commands
// (:help, :vars, :clear, :quit). History persists across sessions in the
// cache directory.
package repl
