package io

import (
	"errors"
	"fmt"
	goio "io"
	"os"
)

var (
	ErrFileOpen    = errors.New("could not open file")
	ErrFileNotOpen = errors.New("file not opened")
)

type FileReader struct {
	path   string
	file   *os.File
	opened bool
}

func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

// Open opens the file for reading, or creates/truncates it for writing.
func (f *FileReader) Open(readOnly bool) (topErr error) {

	var perm os.FileMode = 0644

	if readOnly {
		f.file, topErr = os.OpenFile(f.path, os.O_RDONLY, perm)
	} else {
		f.file, topErr = os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	}

	if topErr != nil {
		return fmt.Errorf("%w %s: %w", ErrFileOpen, f.path, topErr)
	}

	f.opened = true

	return nil
}

func (f *FileReader) Close() error {
	if !f.opened {
		return nil
	}

	f.opened = false
	return f.file.Close()
}

// Raw returns the opened file, nil when the reader is closed.
func (f *FileReader) Raw() *os.File {
	if !f.opened {
		return nil
	}
	return f.file
}

// Peek reads up to n bytes from the start of the file without moving the
// read position.
func (f *FileReader) Peek(n int) ([]byte, error) {
	if !f.opened {
		return nil, ErrFileNotOpen
	}

	buf := make([]byte, n)
	readBytes, err := f.file.ReadAt(buf, 0)
	if readBytes > 0 || errors.Is(err, goio.EOF) {
		return buf[:readBytes], nil
	}

	return nil, err
}
