package store

import "errors"

var (
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrTypeMismatch     = errors.New("column type mismatch")
	ErrAllocation       = errors.New("unable to grow row buffer")
	ErrBufferSize       = errors.New("buffer size does not match the row layout")
)
