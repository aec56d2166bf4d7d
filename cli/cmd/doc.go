// Package cmd implements the subcommands of the tsub CLI.
package cmd
