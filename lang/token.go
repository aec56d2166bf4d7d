package lang

// Token identifies a lexical token of the expression language.
type Token int

const (
	TokAdd Token = iota // +
	TokSub              // -
	TokMul              // *
	TokDiv              // /

	TokLT // <
	TokLE // <=
	TokGT // >
	TokGE // >=
	TokEQ // ==
	TokNE // !=

	TokAnd // &&
	TokOr  // ||
	TokNot // !

	TokQuestion // ?
	TokColon    // :

	TokString   // "..."
	TokVariable // identifier
	TokNumber   // decimal literal

	TokLParen   // (
	TokRParen   // )
	TokComma    // ,
	TokDollar   // $
	TokLBracket // [
	TokRBracket // ]
	TokLBrace   // {
	TokRBrace   // }
	TokRange    // ..

	TokEOF
	TokUnknown
)

var tokenNames = map[Token]string{
	TokAdd:      "+",
	TokSub:      "-",
	TokMul:      "*",
	TokDiv:      "/",
	TokLT:       "<",
	TokLE:       "<=",
	TokGT:       ">",
	TokGE:       ">=",
	TokEQ:       "==",
	TokNE:       "!=",
	TokAnd:      "&&",
	TokOr:       "||",
	TokNot:      "!",
	TokQuestion: "?",
	TokColon:    ":",
	TokString:   "<string>",
	TokVariable: "<variable>",
	TokNumber:   "<number>",
	TokLParen:   "(",
	TokRParen:   ")",
	TokComma:    ",",
	TokDollar:   "$",
	TokLBracket: "[",
	TokRBracket: "]",
	TokLBrace:   "{",
	TokRBrace:   "}",
	TokRange:    "..",
	TokEOF:      "<eof>",
	TokUnknown:  "<unknown>",
}

// String returns the token's source spelling, or a descriptive name for
// tokens without a fixed spelling.
func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return "<unknown>"
}

// Lexeme is one scanned token and its byte length from the scanner's
// current position.
//
// A Size of zero is a sentinel: for TokString, TokNumber, and TokVariable
// it means the payload starts at the current position but its extent must
// be determined by the evaluator's payload parser. For TokUnknown it means
// the input is malformed at this position (an unpaired '=', '&', '|', or
// '.', or an unrecognized byte).
type Lexeme struct {
	Tok  Token
	Size int
}
