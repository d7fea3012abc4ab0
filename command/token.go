package command

import "fmt"

type TokenType uint8

const (
	EOF TokenType = iota
	Illegal

	Identifier
	Number
	String

	LParen
	RParen
	Comma
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Illegal:
		return "illegal"
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	default:
		return ""
	}
}

type Token struct {
	Type  TokenType
	Value string

	// byte offset of the first character in the command
	Pos int
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return t.Type.String()
	case String:
		return fmt.Sprintf("%s %q", t.Type.String(), t.Value)
	default:
		return fmt.Sprintf("%s `%s`", t.Type.String(), t.Value)
	}
}

// IsValue reports whether the token can be assigned to a column.
func (t Token) IsValue() bool {
	return t.Type == Identifier || t.Type == Number || t.Type == String
}
