package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ardnew/tsub/pkg"
)

// Version prints version information.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	out := fmt.Printf

	if ktx := kongContextFrom(ctx); ktx != nil {
		out = func(format string, args ...any) (int, error) {
			return fmt.Fprintf(ktx.Stdout, format, args...)
		}
	}

	_, err := out("%s %s\n", pkg.Name, strings.TrimSpace(pkg.Version))

	return err
}
