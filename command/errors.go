package command

import (
	"errors"
	"fmt"
)

var (
	ErrCommandSyntax   = errors.New("command syntax error")
	ErrUnstorableValue = errors.New("value contains a field or row delimiter")
)

// SyntaxError points at the token where the command stopped making sense.
type SyntaxError struct {
	Pos      int
	Expected string
	Found    Token

	// underlying cause, if any
	Err error
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s at position %d: expected %s, found %s", ErrCommandSyntax.Error(), e.Pos, e.Expected, e.Found.String())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCommandSyntax, e.Err}
	}
	return []error{ErrCommandSyntax}
}

func unexpected(tok Token, expected string) *SyntaxError {
	return &SyntaxError{
		Pos:      tok.Pos,
		Expected: expected,
		Found:    tok,
	}
}
