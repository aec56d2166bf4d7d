package cmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/ardnew/tsub/lang"
	"github.com/ardnew/tsub/log"
)

// Expand expands a template into its output strings.
type Expand struct {
	Template   string `arg:""                                                          help:"Template text (reads --file when omitted)" name:"template" optional:""`
	File       string `default:"-"                                                     help:"Template input file or '-' for stdin"                                   short:"f"`
	MaxRange   int    `default:"65536"                                                 help:"Limit the size of a single range expansion (0 = unlimited)"`
	MaxOutputs int    `default:"1048576"                                               help:"Limit the number of expanded outputs (0 = unlimited)"`
	Zero       bool   `help:"Separate outputs with NUL instead of newline" short:"0"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	template := e.Template
	if template == "" {
		template, err = e.readTemplate()
		if err != nil {
			return err
		}
	}

	m, err := buildHost(ctx)
	if err != nil {
		return err
	}

	outs, err := lang.Run(m, template,
		lang.WithLogger(log.Default()),
		lang.WithMaxRange(e.MaxRange),
		lang.WithMaxOutputs(e.MaxOutputs),
	)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		out = ktx.Stdout
	}

	sep := byte('\n')
	if e.Zero {
		sep = 0
	}

	w := bufio.NewWriter(out)

	for _, s := range outs {
		if _, err := w.WriteString(s); err != nil {
			return err
		}

		if err := w.WriteByte(sep); err != nil {
			return err
		}
	}

	return w.Flush()
}

// readTemplate reads the template from the configured file or stdin.
// A trailing newline is not part of the template.
func (e *Expand) readTemplate() (string, error) {
	var file *os.File

	if e.File == "-" {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(e.File)
		if err != nil {
			return "", err
		}
		defer file.Close()
	}

	data, err := io.ReadAll(bufio.NewReader(file))
	if err != nil {
		return "", err
	}

	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
	}

	return string(data), nil
}
