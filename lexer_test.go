package openinghours

import "testing"

func TestTokenizeBasic(t *testing.T) {
	toks, err := tokenize("Mo-Fr 10:00-18:00")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	want := []TokenKind{
		TokenIdent, TokenDash, TokenIdent,
		TokenNumber, TokenColon, TokenNumber, TokenDash, TokenNumber, TokenColon, TokenNumber,
		TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeTwentyFourSeven(t *testing.T) {
	toks, err := tokenize("24/7")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if len(toks) != 4 || toks[0].Number != 24 || toks[1].Kind != TokenSlash || toks[2].Number != 7 {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestTokenizeQuotedComment(t *testing.T) {
	toks, err := tokenize(`Mo 10:00-18:00 "call ahead"`)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	last := toks[len(toks)-2] // before EOF
	if last.Kind != TokenString || last.Text != "call ahead" {
		t.Fatalf("expected quoted comment token, got %+v", last)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := tokenize(`Mo "unterminated`)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := tokenize("Mo-Fr 10:00-18:00 #")
	if err == nil {
		t.Fatal("expected error for unexpected character")
	}
}

func TestTokenizeDoublePipe(t *testing.T) {
	toks, err := tokenize("Mo 10:00-12:00 || 24/7")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == TokenPipePipe {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a TokenPipePipe in the stream")
	}
}
