package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tsub/log"
)

// Default caps on the two structures that grow with input: a single range
// expansion and the expander's result set. Either can be raised or
// disabled (<= 0) with the corresponding option.
const (
	DefaultMaxRange   = 1 << 16
	DefaultMaxOutputs = 1 << 20
)

// Option applies a configuration option to a template run.
type Option func(*processor)

// WithLogger attaches a logger for trace-level diagnostics of the
// expansion. The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(p *processor) { p.logger = logger }
}

// WithMaxRange caps the number of elements a single '..' range may expand
// to. Values <= 0 disable the cap.
func WithMaxRange(n int) Option {
	return func(p *processor) { p.maxRange = n }
}

// WithMaxOutputs caps the cardinality of the result set. Values <= 0
// disable the cap.
func WithMaxOutputs(n int) Option {
	return func(p *processor) { p.maxOutputs = n }
}

// Run expands a template into its output strings. Text outside backtick
// regions is literal (with "\\\\" and "\\`" escaping a backslash and a
// backtick); each backtick region is evaluated as one expression whose
// flattened values multiply the output set.
//
// The host may be nil, in which case any variable or function reference in
// the template is an error. On failure the returned error renders the
// run's single diagnostic and the outputs are nil.
func Run(host Host, input string, opts ...Option) ([]string, error) {
	p := &processor{
		input:      input,
		host:       host,
		pool:       NewPool(),
		maxRange:   DefaultMaxRange,
		maxOutputs: DefaultMaxOutputs,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p.run()
}

// processor walks the template bytes and folds literal segments and
// expression expansions into the working result set. Each inner slice of
// result is one in-progress output; all references point into pool.
type processor struct {
	input      string
	host       Host
	pool       *Pool
	result     [][]*string
	logger     log.Logger
	maxRange   int
	maxOutputs int
}

func isTemplateEscape(c byte) bool { return c == '\\' || c == '`' }

func (p *processor) run() ([]string, error) {
	var segment []byte

	for pos := 0; pos < len(p.input); pos++ {
		c := p.input[pos]

		switch {
		case c == '\\':
			if pos+1 < len(p.input) && isTemplateEscape(p.input[pos+1]) {
				pos++
				segment = append(segment, p.input[pos])

				continue
			}

			// Any other backslash is kept verbatim.
			segment = append(segment, c)

		case c == '`':
			pos++

			if len(segment) > 0 {
				p.expand(p.pool.Intern(string(segment)))
				segment = segment[:0]
			}

			end, err := p.processExpr(pos)
			if err != nil {
				return nil, err
			}

			// The loop increment skips the closing backtick.
			pos = end

		default:
			segment = append(segment, c)
		}
	}

	if len(segment) > 0 {
		p.expand(p.pool.Intern(string(segment)))
	}

	outs := p.generate()

	p.logger.Debug("template expanded",
		slog.Int("outputs", len(outs)),
		slog.Int("pooled", p.pool.Len()),
	)

	return outs, nil
}

// processExpr evaluates the expression starting at pos, requires the
// closing backtick immediately after it, and folds the flattened value
// into the result set. It returns the offset of the closing backtick.
func (p *processor) processExpr(pos int) (int, error) {
	val, end, err := newInterp(p.input, pos, p.host, p.maxRange).run()
	if err != nil {
		return 0, err
	}

	if end >= len(p.input) || p.input[end] != '`' {
		return 0, ErrUnterminatedExpr.at(moduleExpander, 0, 0)
	}

	strs, err := p.valueStrings(val)
	if err != nil {
		return 0, err
	}

	if err := p.concatenate(strs); err != nil {
		return 0, err
	}

	p.logger.Trace("expression expanded",
		slog.Int("pos", pos),
		slog.Int("values", len(strs)),
		slog.Int("outputs", len(p.result)),
	)

	return end, nil
}

// valueStrings flattens a value into interned string references: a string
// or number yields one element, and a list yields the concatenation of its
// flattened elements, so nested lists flatten fully. A null value cannot
// be expanded; successful expressions never produce one, but a host can.
func (p *processor) valueStrings(v Value) ([]*string, error) {
	switch v.Kind() {
	case KindString:
		return []*string{p.pool.Intern(v.Text())}, nil

	case KindNumber:
		text := strconv.FormatInt(int64(v.Number()), 10)

		return []*string{p.pool.Intern(text)}, nil

	case KindList:
		elems := v.List()
		out := make([]*string, 0, len(elems))

		for i := range elems {
			flat, err := p.valueStrings(elems[i])
			if err != nil {
				return nil, err
			}

			out = append(out, flat...)
		}

		return out, nil

	case KindNull:
		return nil, ErrNullExpansion.at(moduleExpander, 0, 0)

	default:
		panic("lang: unreachable value kind in expansion")
	}
}

// expand appends one interned string to every working output, seeding the
// result set when it is empty.
func (p *processor) expand(s *string) {
	if len(p.result) == 0 {
		p.result = append(p.result, []*string{s})

		return
	}

	for i := range p.result {
		p.result[i] = append(p.result[i], s)
	}
}

// concatenate folds a flattened expression into the result set as a
// Cartesian product, ordered existing-output-major: every existing output
// is extended by each string before the next output is considered.
func (p *processor) concatenate(strs []*string) error {
	if len(p.result) == 0 {
		for _, s := range strs {
			p.result = append(p.result, []*string{s})
		}

		return nil
	}

	size := len(p.result) * len(strs)
	if p.maxOutputs > 0 && size > p.maxOutputs {
		return ErrTooManyOutputs.
			With(
				slog.Int("size", size),
				slog.Int("limit", p.maxOutputs),
			).
			at(moduleExpander, 0, 0)
	}

	next := make([][]*string, 0, size)

	for _, out := range p.result {
		for _, s := range strs {
			row := make([]*string, len(out)+1)
			copy(row, out)
			row[len(out)] = s

			next = append(next, row)
		}
	}

	p.result = next

	return nil
}

// generate joins each working output into its final string, in insertion
// order. An empty result set yields no outputs.
func (p *processor) generate() []string {
	outs := make([]string, 0, len(p.result))

	for _, refs := range p.result {
		var n int
		for _, s := range refs {
			n += len(*s)
		}

		var b strings.Builder

		b.Grow(n)

		for _, s := range refs {
			b.WriteString(*s)
		}

		outs = append(outs, b.String())
	}

	return outs
}
