package command

import "testing"

func TestTokenize(t *testing.T) {

	tokens := Tokenize(`APPEND ROW (4, "New Book", x1)`)

	expected := []Token{
		{Type: Identifier, Value: "APPEND", Pos: 0},
		{Type: Identifier, Value: "ROW", Pos: 7},
		{Type: LParen, Value: "(", Pos: 11},
		{Type: Number, Value: "4", Pos: 12},
		{Type: Comma, Value: ",", Pos: 13},
		{Type: String, Value: "New Book", Pos: 15},
		{Type: Comma, Value: ",", Pos: 25},
		{Type: Identifier, Value: "x", Pos: 27},
		{Type: Number, Value: "1", Pos: 28},
		{Type: RParen, Value: ")", Pos: 29},
		{Type: EOF, Pos: 30},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens but got %d: %v", len(expected), len(tokens), tokens)
	}

	for idx, tok := range expected {
		if tokens[idx] != tok {
			t.Errorf("token %d: expected %v but got %v", idx, tok, tokens[idx])
		}
	}
}

func TestNextTokenAdvances(t *testing.T) {

	input := "  PRINT  "

	tok, pos := NextToken(input, 0)
	if tok.Type != Identifier || tok.Value != "PRINT" || pos != 7 {
		t.Errorf("Expected PRINT ending at 7, got %v at %d", tok, pos)
	}

	tok, pos = NextToken(input, pos)
	if tok.Type != EOF || pos != len(input) {
		t.Errorf("Expected end of input at %d, got %v at %d", len(input), tok, pos)
	}
}

func TestIllegalTokens(t *testing.T) {

	cases := map[string]string{
		`"unterminated`: `"unterminated`,
		"-5":            "-",
		"#":             "#",
	}

	for input, value := range cases {
		tok, _ := NextToken(input, 0)
		if tok.Type != Illegal || tok.Value != value {
			t.Errorf("%q: expected illegal `%s`, got %v", input, value, tok)
		}
	}
}

func TestEmptyQuotedString(t *testing.T) {

	tok, pos := NextToken(`""`, 0)
	if tok.Type != String || tok.Value != "" || pos != 2 {
		t.Errorf("Expected empty string ending at 2, got %v at %d", tok, pos)
	}

	if !tok.IsValue() {
		t.Errorf("Expected empty string to be a value")
	}
}
