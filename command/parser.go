package command

import "strings"

type Kind uint8

const (
	PrintKind Kind = iota
	AppendRowKind
)

func (k Kind) String() string {
	switch k {
	case PrintKind:
		return "PRINT"
	case AppendRowKind:
		return "APPEND ROW"
	default:
		return ""
	}
}

type Command interface {
	Kind() Kind
}

type PrintCommand struct{}

func (PrintCommand) Kind() Kind { return PrintKind }

type AppendRowCommand struct {
	Values []Token
}

func (AppendRowCommand) Kind() Kind { return AppendRowKind }

// Tokens returns the raw bytes of every value, in column order.
func (c AppendRowCommand) Tokens() [][]byte {
	out := make([][]byte, len(c.Values))
	for idx, tok := range c.Values {
		out[idx] = []byte(tok.Value)
	}
	return out
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tt TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != tt {
		return tok, unexpected(tok, tt.String())
	}
	return tok, nil
}

func (p *parser) expectKeyword(keyword string) error {
	tok := p.next()
	if tok.Type != Identifier || !strings.EqualFold(tok.Value, keyword) {
		return unexpected(tok, keyword)
	}
	return nil
}

func (p *parser) expectEnd() error {
	tok := p.next()
	if tok.Type != EOF {
		return unexpected(tok, EOF.String())
	}
	return nil
}

// Parse reads one of
//
//	PRINT
//	APPEND ROW ( value [, value ...] )
//
// where a value is an identifier, a number or a double quoted string.
// Keywords are case insensitive.
func Parse(input string) (Command, error) {

	p := &parser{tokens: Tokenize(input)}

	head := p.next()
	if head.Type != Identifier {
		return nil, unexpected(head, "PRINT or APPEND")
	}

	switch {
	case strings.EqualFold(head.Value, "PRINT"):
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return PrintCommand{}, nil

	case strings.EqualFold(head.Value, "APPEND"):
		return p.parseAppendRow()

	default:
		return nil, unexpected(head, "PRINT or APPEND")
	}
}

func (p *parser) parseAppendRow() (Command, error) {

	if err := p.expectKeyword("ROW"); err != nil {
		return nil, err
	}

	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}

	cmd := AppendRowCommand{Values: []Token{}}

	for {
		value := p.next()
		if !value.IsValue() {
			return nil, unexpected(value, "value")
		}
		cmd.Values = append(cmd.Values, value)

		sep := p.next()
		if sep.Type == RParen {
			break
		}
		if sep.Type != Comma {
			return nil, unexpected(sep, "',' or ')'")
		}
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return cmd, nil
}
