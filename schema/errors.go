package schema

import "errors"

var (
	ErrSchemaSyntax   = errors.New("schema syntax error")
	ErrTooManyColumns = errors.New("too many columns")
	ErrNameTooLong    = errors.New("name too long")
)
