package lang

import (
	"errors"
	"log/slog"
	"strconv"
)

// interp is the expression evaluator: a recursive-descent parser that
// evaluates as it parses, producing one Value per backtick region. No AST
// is materialized; the scanner position after a successful run is the
// offset of the first byte past the expression.
type interp struct {
	src      string
	scan     *Scanner
	host     Host
	dollar   *Value
	maxRange int
}

func newInterp(src string, pos int, host Host, maxRange int) *interp {
	return &interp{
		src:      src,
		scan:     NewScanner(src, pos),
		host:     host,
		maxRange: maxRange,
	}
}

// run evaluates one expression and returns its value along with the byte
// offset just past it.
func (in *interp) run() (Value, int, error) {
	v, err := in.expr()
	if err != nil {
		return Value{}, 0, err
	}

	return v, in.scan.Pos(), nil
}

// fail stamps an error with the evaluator's module name and the current
// source location. The scanner position is not rewound.
func (in *interp) fail(e *Error) error {
	line, col := in.scan.Location()

	return e.at(moduleInterp, line, col)
}

// expr parses a full expression with its optional map suffix:
//
//	Exp := Ternary ( '{' Exp '}' )?
//
// When the operand is a list, the body is re-evaluated once per element
// with '$' bound to that element; the closing '}' is validated on the
// first pass only and its offset is trusted afterwards. When the operand
// is a scalar, the body is evaluated once with '$' bound to the operand
// and its result replaces the operand. The prior dollar binding is
// restored on exit, so nested map forms see their own element.
func (in *interp) expr() (Value, error) {
	v, err := in.ternary()
	if err != nil {
		return Value{}, err
	}

	if in.scan.Lexeme().Tok != TokLBrace {
		return v, nil
	}

	in.scan.Advance()
	body := in.scan.Pos()

	prev := in.dollar
	defer func() { in.dollar = prev }()

	if v.Kind() != KindList {
		bound := v.Copy()
		in.dollar = &bound

		mapped, err := in.expr()
		if err != nil {
			return Value{}, err
		}

		if in.scan.Lexeme().Tok != TokRBrace {
			return Value{}, in.fail(ErrExpectRBrace)
		}

		in.scan.Advance()

		return mapped, nil
	}

	elems := v.List()
	if len(elems) == 0 {
		// Unreachable from literals; a host may still hand one back.
		return Value{}, in.fail(ErrEmptyMapList)
	}

	out := make([]Value, 0, len(elems))

	var end int

	for i := range elems {
		elem := elems[i]
		in.dollar = &elem

		mapped, err := in.expr()
		if err != nil {
			return Value{}, err
		}

		if i == 0 {
			// Validate the closing brace once and record where the body
			// ends; later iterations trust this offset.
			if in.scan.Lexeme().Tok != TokRBrace {
				return Value{}, in.fail(ErrExpectRBrace)
			}

			in.scan.Advance()
			end = in.scan.Pos()
		}

		out = append(out, mapped)
		in.scan.Seek(body)
	}

	in.scan.Seek(end)

	return listValue(out), nil
}

// ternary parses '?:'. Both branches are always evaluated; the condition
// only selects which result survives.
func (in *interp) ternary() (Value, error) {
	cond, err := in.logic()
	if err != nil {
		return Value{}, err
	}

	if in.scan.Lexeme().Tok != TokQuestion {
		return cond, nil
	}

	in.scan.Advance()

	left, err := in.expr()
	if err != nil {
		return Value{}, err
	}

	if in.scan.Lexeme().Tok != TokColon {
		return Value{}, in.fail(ErrExpectColon)
	}

	in.scan.Advance()

	right, err := in.expr()
	if err != nil {
		return Value{}, err
	}

	if cond.Truthy() {
		return left, nil
	}

	return right, nil
}

// logic parses '&&' and '||' chains. Both operands are evaluated; the
// short-circuit is semantic only, and a non-number operand can never equal
// zero, so it always contributes truth.
func (in *interp) logic() (Value, error) {
	v, err := in.compare()
	if err != nil {
		return Value{}, err
	}

	for {
		op := in.scan.Lexeme().Tok
		if op != TokAnd && op != TokOr {
			return v, nil
		}

		in.scan.Advance()

		rhs, err := in.compare()
		if err != nil {
			return Value{}, err
		}

		zero := func(x Value) bool {
			return x.Kind() == KindNumber && x.Number() == 0
		}

		if op == TokAnd {
			if zero(v) || zero(rhs) {
				v = Number(0)
			} else {
				v = Number(1)
			}
		} else {
			if zero(v) && zero(rhs) {
				v = Number(0)
			} else {
				v = Number(1)
			}
		}
	}
}

// compare parses relational chains. Operands must be two numbers or two
// strings; strings compare lexicographically by byte. The result is the
// number 0 or 1.
func (in *interp) compare() (Value, error) {
	v, err := in.sum()
	if err != nil {
		return Value{}, err
	}

	for {
		op := in.scan.Lexeme().Tok

		switch op {
		case TokLT, TokLE, TokGT, TokGE, TokEQ, TokNE:
		default:
			return v, nil
		}

		in.scan.Advance()

		rhs, err := in.sum()
		if err != nil {
			return Value{}, err
		}

		switch rhs.Kind() {
		case KindString:
			if v.Kind() != KindString {
				return Value{}, in.fail(ErrCompareString)
			}

			v = boolNumber(compareOrdered(op, v.Text(), rhs.Text()))

		case KindNumber:
			if v.Kind() != KindNumber {
				return Value{}, in.fail(ErrCompareNumber)
			}

			v = boolNumber(compareOrdered(op, v.Number(), rhs.Number()))

		default:
			return Value{}, in.fail(ErrCompareOperand)
		}
	}
}

func compareOrdered[T int32 | string](op Token, a, b T) bool {
	switch op {
	case TokLT:
		return a < b
	case TokLE:
		return a <= b
	case TokGT:
		return a > b
	case TokGE:
		return a >= b
	case TokEQ:
		return a == b
	case TokNE:
		return a != b
	default:
		panic("lang: unreachable comparison operator " + op.String())
	}
}

func boolNumber(b bool) Value {
	if b {
		return Number(1)
	}

	return Number(0)
}

// sum parses '+' and '-' chains over numbers.
func (in *interp) sum() (Value, error) {
	v, err := in.term()
	if err != nil {
		return Value{}, err
	}

	for {
		op := in.scan.Lexeme().Tok
		if op != TokAdd && op != TokSub {
			return v, nil
		}

		in.scan.Advance()

		rhs, err := in.term()
		if err != nil {
			return Value{}, err
		}

		if v.Kind() != KindNumber || rhs.Kind() != KindNumber {
			return Value{}, in.fail(ErrSumOperand)
		}

		if op == TokAdd {
			v = Number(v.Number() + rhs.Number())
		} else {
			v = Number(v.Number() - rhs.Number())
		}
	}
}

// term parses '*' and '/' chains over numbers. Division by zero fails the
// expression.
func (in *interp) term() (Value, error) {
	v, err := in.factor()
	if err != nil {
		return Value{}, err
	}

	for {
		op := in.scan.Lexeme().Tok
		if op != TokMul && op != TokDiv {
			return v, nil
		}

		in.scan.Advance()

		rhs, err := in.factor()
		if err != nil {
			return Value{}, err
		}

		if v.Kind() != KindNumber || rhs.Kind() != KindNumber {
			return Value{}, in.fail(ErrTermOperand)
		}

		if op == TokMul {
			v = Number(v.Number() * rhs.Number())
		} else {
			if rhs.Number() == 0 {
				return Value{}, in.fail(ErrDivideByZero)
			}

			v = Number(v.Number() / rhs.Number())
		}
	}
}

// factor dispatches between a unary prefix and a bare atom.
func (in *interp) factor() (Value, error) {
	switch in.scan.Lexeme().Tok {
	case TokAdd, TokSub, TokNot:
		return in.unary()
	default:
		return in.atomic()
	}
}

// unary parses a single prefix operator applied to an atom. '+' and '-'
// require a number. '!' maps a number to its logical negation, any string
// to 0, and null or a list to 1 (a list is truthy elsewhere; the asymmetry
// is part of the language).
func (in *interp) unary() (Value, error) {
	op := in.scan.Lexeme().Tok
	in.scan.Advance()

	v, err := in.atomic()
	if err != nil {
		return Value{}, err
	}

	switch op {
	case TokAdd, TokSub:
		if v.Kind() != KindNumber {
			return Value{}, in.fail(ErrUnaryOperand)
		}

		if op == TokSub {
			v = Number(-v.Number())
		}

		return v, nil

	case TokNot:
		switch v.Kind() {
		case KindNumber:
			return boolNumber(v.Number() == 0), nil
		case KindString:
			return Number(0), nil
		case KindNull, KindList:
			return Number(1), nil
		default:
			panic("lang: unreachable value kind in unary not")
		}

	default:
		panic("lang: unreachable unary operator " + op.String())
	}
}

// atomic parses the highest-precedence forms: list literals, '$', name
// references, literals, and parenthesized expressions.
func (in *interp) atomic() (Value, error) {
	switch lex := in.scan.Lexeme(); lex.Tok {
	case TokLBracket:
		return in.list()

	case TokDollar:
		if in.dollar == nil {
			return Value{}, in.fail(ErrDollarUnbound)
		}

		v := in.dollar.Copy()
		in.scan.Advance()

		return v, nil

	case TokVariable:
		return in.nameRef()

	case TokNumber:
		return in.parseNumber()

	case TokString:
		return in.parseString()

	case TokLParen:
		in.scan.Advance()

		v, err := in.expr()
		if err != nil {
			return Value{}, err
		}

		if in.scan.Lexeme().Tok != TokRParen {
			return Value{}, in.fail(ErrExpectRParen)
		}

		in.scan.Advance()

		return v, nil

	default:
		return Value{}, in.fail(
			ErrUnexpectedToken.Msgf("unexpected token: %s", lex.Tok),
		)
	}
}

// list parses a non-empty list literal. Each item is an expression,
// optionally followed by '..' and a second expression forming a half-open
// integer range [a,b) that must be strictly increasing.
func (in *interp) list() (Value, error) {
	in.scan.Advance() // consume '['

	if in.scan.Lexeme().Tok == TokRBracket {
		return Value{}, in.fail(ErrEmptyList)
	}

	var elems []Value

	for {
		item, err := in.expr()
		if err != nil {
			return Value{}, err
		}

		if in.scan.Lexeme().Tok == TokRange {
			in.scan.Advance()

			to, err := in.expr()
			if err != nil {
				return Value{}, err
			}

			if item.Kind() != KindNumber || to.Kind() != KindNumber {
				return Value{}, in.fail(ErrRangeOperand)
			}

			fr, en := item.Number(), to.Number()
			if fr >= en {
				return Value{}, in.fail(ErrRangeOrder)
			}

			if in.maxRange > 0 && int64(en)-int64(fr) > int64(in.maxRange) {
				return Value{}, in.fail(ErrRangeTooLarge.With(
					slog.Int64("count", int64(en)-int64(fr)),
					slog.Int("limit", in.maxRange),
				))
			}

			for ; fr < en; fr++ {
				elems = append(elems, Number(fr))
			}
		} else {
			elems = append(elems, item)
		}

		switch lex := in.scan.Lexeme(); lex.Tok {
		case TokComma:
			in.scan.Advance()
		case TokRBracket:
			in.scan.Advance()

			return listValue(elems), nil
		default:
			return Value{}, in.fail(ErrUnexpectedToken.Msgf(
				"list literal has unexpected token: %s", lex.Tok,
			))
		}
	}
}

// nameRef parses an identifier reference: a function call when '(' follows
// the name, a host variable lookup otherwise.
func (in *interp) nameRef() (Value, error) {
	name := in.parseVariable()

	if in.scan.Lexeme().Tok == TokLParen {
		return in.call(name)
	}

	if in.host == nil {
		return Value{}, in.fail(ErrNoHost.Msgf(
			"variable %q cannot be resolved without a host", name,
		))
	}

	v, ok := in.host.GetVariable(name)
	if !ok {
		return Value{}, in.fail(ErrVariableNotFound.Msgf(
			"variable %q is not defined", name,
		))
	}

	return v, nil
}

// call parses a function call's argument list and dispatches it to the
// host. An empty argument list is not part of the grammar.
func (in *interp) call(name string) (Value, error) {
	in.scan.Advance() // consume '('

	var args []Value

	for {
		arg, err := in.expr()
		if err != nil {
			return Value{}, err
		}

		args = append(args, arg)

		switch lex := in.scan.Lexeme(); lex.Tok {
		case TokComma:
			in.scan.Advance()
		case TokRParen:
			in.scan.Advance()

			if in.host == nil {
				return Value{}, in.fail(ErrNoHost.Msgf(
					"function %q cannot be executed without a host", name,
				))
			}

			v, err := in.host.ExecFunction(name, args)
			if err != nil {
				return Value{}, in.fail(ErrFunctionFailed.Msgf(
					"function %q cannot be executed", name,
				).Wrap(err))
			}

			return v, nil
		default:
			return Value{}, in.fail(ErrUnexpectedToken.Msgf(
				"unexpected token: %s", lex.Tok,
			))
		}
	}
}

// parseNumber consumes a base-10 integer literal. The value is parsed wide
// and truncated to 32 bits, so overflow wraps. Signs are handled at the
// unary level, never inside the literal.
func (in *interp) parseNumber() (Value, error) {
	start := in.scan.Pos()

	i := start
	for i < len(in.src) && isDigit(in.src[i]) {
		i++
	}

	// A range overflow saturates the wide value, which then truncates
	// below; any other parse failure is malformed input.
	wide, err := strconv.ParseInt(in.src[start:i], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, in.fail(ErrBadNumber.Wrap(err))
	}

	in.scan.Seek(i)

	return Number(int32(wide)), nil
}

// parseString consumes a double-quoted string literal. The recognized
// two-character escapes keep the second byte literally ('\n' yields 'n');
// any other backslash is kept verbatim.
func (in *interp) parseString() (Value, error) {
	start := in.scan.Pos()

	var buf []byte

	i := start + 1
	for ; i < len(in.src); i++ {
		if in.src[i] == '\\' && i+1 < len(in.src) && isStringEscape(in.src[i+1]) {
			i++
			buf = append(buf, in.src[i])

			continue
		}

		if in.src[i] == '"' {
			break
		}

		buf = append(buf, in.src[i])
	}

	if i == len(in.src) {
		return Value{}, in.fail(ErrUnterminatedString)
	}

	in.scan.Seek(i + 1)

	return String(string(buf)), nil
}

func isStringEscape(c byte) bool {
	switch c {
	case 'n', 't', 'r', 'b', '"', '\\':
		return true
	default:
		return false
	}
}

// parseVariable consumes an identifier and returns its name. The scanner
// has already classified the first byte.
func (in *interp) parseVariable() string {
	start := in.scan.Pos()

	i := start + 1
	for i < len(in.src) && isIdentRest(in.src[i]) {
		i++
	}

	in.scan.Seek(i)

	return in.src[start:i]
}
