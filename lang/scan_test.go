package lang

import "testing"

func TestScannerTokens(t *testing.T) {
	const src = "+ - * / < <= > >= == != && || ! ? : , $ ( ) [ ] { } .."

	want := []Token{
		TokAdd, TokSub, TokMul, TokDiv,
		TokLT, TokLE, TokGT, TokGE, TokEQ, TokNE,
		TokAnd, TokOr, TokNot,
		TokQuestion, TokColon, TokComma, TokDollar,
		TokLParen, TokRParen, TokLBracket, TokRBracket,
		TokLBrace, TokRBrace, TokRange,
		TokEOF,
	}

	s := NewScanner(src, 0)

	for i, tok := range want {
		lex := s.Lexeme()
		if lex.Tok != tok {
			t.Fatalf("token %d = %s, want %s", i, lex.Tok, tok)
		}

		if tok == TokEOF {
			break
		}

		s.Advance()
	}
}

func TestScannerPayloadSentinels(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want Token
	}{
		{`"text"`, TokString},
		{"123", TokNumber},
		{"name", TokVariable},
		{"_x9", TokVariable},
	} {
		s := NewScanner(tt.src, 0)

		lex := s.Lexeme()
		if lex.Tok != tt.want {
			t.Errorf("scan(%q) = %s, want %s", tt.src, lex.Tok, tt.want)
		}

		if lex.Size != 0 {
			t.Errorf("scan(%q) size = %d, want sentinel 0", tt.src, lex.Size)
		}
	}
}

func TestScannerUnpairedPrefixes(t *testing.T) {
	for _, src := range []string{"=", "&", "|", ".", "@"} {
		s := NewScanner(src, 0)

		lex := s.Lexeme()
		if lex.Tok != TokUnknown || lex.Size != 0 {
			t.Errorf("scan(%q) = (%s, %d), want zero-size unknown",
				src, lex.Tok, lex.Size)
		}
	}
}

func TestScannerSkipsWhitespace(t *testing.T) {
	s := NewScanner(" \t\r\n\v+", 0)

	if lex := s.Lexeme(); lex.Tok != TokAdd {
		t.Fatalf("lexeme = %s, want +", lex.Tok)
	}

	if s.Pos() != 5 {
		t.Fatalf("pos = %d, want 5", s.Pos())
	}
}

func TestScannerSeek(t *testing.T) {
	const src = "[1,2]"

	s := NewScanner(src, 0)
	s.Advance() // [

	if lex := s.Lexeme(); lex.Tok != TokNumber {
		t.Fatalf("lexeme = %s, want number", lex.Tok)
	}

	// Rewind to the start and rescan.
	if lex := s.Seek(0); lex.Tok != TokLBracket {
		t.Fatalf("after seek: lexeme = %s, want [", lex.Tok)
	}
}

func TestScannerLocation(t *testing.T) {
	const src = "1 +\n 2"

	s := NewScanner(src, 0)
	s.Seek(len(src) - 1) // at the 2

	line, col := s.Location()
	if line != 2 || col != 2 {
		t.Fatalf("location = (%d,%d), want (2,2)", line, col)
	}
}

func TestScannerAdvancePanicsOnSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic advancing over a zero-size lexeme")
		}
	}()

	NewScanner("123", 0).Advance()
}
