package cmd

import (
	"context"

	"github.com/ardnew/tsub/cli/cmd/repl"
	"github.com/ardnew/tsub/log"
)

// Repl expands templates interactively.
type Repl struct{}

// Run executes the repl command.
func (Repl) Run(ctx context.Context) error {
	m, err := buildHost(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, m, cacheDirFrom(ctx), log.Default())
}
