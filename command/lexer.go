package command

var punctuation = map[byte]TokenType{
	'(': LParen,
	')': RParen,
	',': Comma,
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// NextToken scans one token starting at pos and returns it together with the
// position right after it.
//
// Identifiers win over numbers, numbers over quoted strings, anything else is
// a single character token.
func NextToken(input string, pos int) (Token, int) {

	for pos < len(input) && isSpace(input[pos]) {
		pos++
	}

	if pos >= len(input) {
		return Token{Type: EOF, Pos: pos}, pos
	}

	start := pos
	ch := input[pos]

	switch {
	case isAlpha(ch):
		for pos < len(input) && isAlpha(input[pos]) {
			pos++
		}
		return Token{Type: Identifier, Value: input[start:pos], Pos: start}, pos

	case isDigit(ch):
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
		return Token{Type: Number, Value: input[start:pos], Pos: start}, pos

	case ch == '"':
		// skip opening quote
		pos++
		valueStart := pos

		for pos < len(input) && input[pos] != '"' {
			pos++
		}

		if pos >= len(input) {
			return Token{Type: Illegal, Value: input[start:], Pos: start}, pos
		}

		value := input[valueStart:pos]
		// skip closing quote
		pos++

		return Token{Type: String, Value: value, Pos: start}, pos
	}

	if tt, ok := punctuation[ch]; ok {
		return Token{Type: tt, Value: string(ch), Pos: start}, pos + 1
	}

	return Token{Type: Illegal, Value: string(ch), Pos: start}, pos + 1
}

// Tokenize returns every token of the input, the last one is always EOF.
func Tokenize(input string) []Token {
	tokens := []Token{}
	pos := 0

	for {
		var tok Token
		tok, pos = NextToken(input, pos)
		tokens = append(tokens, tok)

		if tok.Type == EOF {
			return tokens
		}
	}
}
