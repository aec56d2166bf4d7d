package lang

// Scanner is a one-token-lookahead lexer over a slice of the template
// source starting at a fixed offset. The expander shares one source string
// with every scanner it creates, so positions are absolute byte offsets
// into that string.
//
// Whitespace is consumed while priming the lookahead, so Pos always refers
// to the first byte of the current lexeme (or end of input at TokEOF).
type Scanner struct {
	src   string
	pos   int
	start int
	lex   Lexeme
}

// NewScanner creates a scanner over src positioned at pos with the
// lookahead primed.
func NewScanner(src string, pos int) *Scanner {
	s := &Scanner{src: src, pos: pos, start: pos}
	s.next()

	return s
}

// Lexeme returns the current lookahead without consuming it.
func (s *Scanner) Lexeme() Lexeme { return s.lex }

// Pos returns the byte offset of the current lexeme.
func (s *Scanner) Pos() int { return s.pos }

// Advance consumes the current lexeme by its declared size and returns the
// new lookahead. Advancing over a zero-size lexeme is an internal error:
// payload tokens must be consumed through Seek by their parser.
func (s *Scanner) Advance() Lexeme {
	if s.lex.Size == 0 {
		panic("lang: scanner advanced over zero-size lexeme")
	}

	s.pos += s.lex.Size

	return s.next()
}

// AdvanceN consumes n bytes and returns the new lookahead.
func (s *Scanner) AdvanceN(n int) Lexeme {
	s.pos += n

	return s.next()
}

// Seek repositions the scanner at an absolute offset and refreshes the
// lookahead. The evaluator uses it to consume token payloads and to rewind
// map-expression bodies.
func (s *Scanner) Seek(pos int) Lexeme {
	s.pos = pos

	return s.next()
}

// Location returns the 1-based line and column of the current position,
// counted from the offset the scanner was created at. It is only used for
// diagnostics, so it rescans rather than tracking state.
func (s *Scanner) Location() (line, col int) {
	line, col = 1, 1

	for i := s.start; i < s.pos && i < len(s.src); i++ {
		if s.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

// byteAt returns the byte at offset i, or 0 past the end of input.
func (s *Scanner) byteAt(i int) byte {
	if i < 0 || i >= len(s.src) {
		return 0
	}

	return s.src[i]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v':
		return true
	default:
		return false
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentRest(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// next skips whitespace and classifies the token at the new position
// without consuming it.
func (s *Scanner) next() Lexeme {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}

	s.lex = s.classify()

	return s.lex
}

func (s *Scanner) classify() Lexeme {
	c := s.byteAt(s.pos)

	switch c {
	case 0:
		return Lexeme{Tok: TokEOF}
	case '+':
		return Lexeme{Tok: TokAdd, Size: 1}
	case '-':
		return Lexeme{Tok: TokSub, Size: 1}
	case '*':
		return Lexeme{Tok: TokMul, Size: 1}
	case '/':
		return Lexeme{Tok: TokDiv, Size: 1}
	case '$':
		return Lexeme{Tok: TokDollar, Size: 1}
	case '>':
		if s.byteAt(s.pos+1) == '=' {
			return Lexeme{Tok: TokGE, Size: 2}
		}

		return Lexeme{Tok: TokGT, Size: 1}
	case '<':
		if s.byteAt(s.pos+1) == '=' {
			return Lexeme{Tok: TokLE, Size: 2}
		}

		return Lexeme{Tok: TokLT, Size: 1}
	case '=':
		if s.byteAt(s.pos+1) == '=' {
			return Lexeme{Tok: TokEQ, Size: 2}
		}

		return Lexeme{Tok: TokUnknown}
	case '!':
		if s.byteAt(s.pos+1) == '=' {
			return Lexeme{Tok: TokNE, Size: 2}
		}

		return Lexeme{Tok: TokNot, Size: 1}
	case '&':
		if s.byteAt(s.pos+1) == '&' {
			return Lexeme{Tok: TokAnd, Size: 2}
		}

		return Lexeme{Tok: TokUnknown}
	case '|':
		if s.byteAt(s.pos+1) == '|' {
			return Lexeme{Tok: TokOr, Size: 2}
		}

		return Lexeme{Tok: TokUnknown}
	case '?':
		return Lexeme{Tok: TokQuestion, Size: 1}
	case ':':
		return Lexeme{Tok: TokColon, Size: 1}
	case ',':
		return Lexeme{Tok: TokComma, Size: 1}
	case '(':
		return Lexeme{Tok: TokLParen, Size: 1}
	case ')':
		return Lexeme{Tok: TokRParen, Size: 1}
	case '[':
		return Lexeme{Tok: TokLBracket, Size: 1}
	case ']':
		return Lexeme{Tok: TokRBracket, Size: 1}
	case '{':
		return Lexeme{Tok: TokLBrace, Size: 1}
	case '}':
		return Lexeme{Tok: TokRBrace, Size: 1}
	case '.':
		if s.byteAt(s.pos+1) == '.' {
			return Lexeme{Tok: TokRange, Size: 2}
		}

		return Lexeme{Tok: TokUnknown}
	case '"':
		return Lexeme{Tok: TokString}
	default:
		switch {
		case isDigit(c):
			return Lexeme{Tok: TokNumber}
		case isIdentStart(c):
			return Lexeme{Tok: TokVariable}
		default:
			return Lexeme{Tok: TokUnknown}
		}
	}
}
