package table

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dot5enko/miniql/schema"
)

type LoadOptions struct {
	Limits schema.Limits

	// row buffer limit in bytes, 0 means unlimited
	MaxBytes int
}

const FieldSeparator = '|'

// Load reads a table in the textual format: the table name line, the column
// line and one `|` separated line per row.
func Load(r io.Reader, opts LoadOptions) (*Table, error) {

	reader := bufio.NewReader(r)

	nameLine, nameErr := readLine(reader)
	if nameErr != nil {
		if errors.Is(nameErr, io.EOF) {
			return nil, fmt.Errorf("%w: missing table name line", schema.ErrSchemaSyntax)
		}
		return nil, nameErr
	}

	columnLine, columnErr := readLine(reader)
	if columnErr != nil {
		if errors.Is(columnErr, io.EOF) {
			return nil, fmt.Errorf("%w: missing column definition line", schema.ErrSchemaSyntax)
		}
		return nil, columnErr
	}

	tableSchema, schemaErr := schema.Parse(string(nameLine), string(columnLine), opts.Limits)
	if schemaErr != nil {
		return nil, schemaErr
	}

	t := New(tableSchema, opts.MaxBytes)

	// first two lines are the header
	lineNo := 2

	// a single zero sized column is written as an empty line per row
	blankIsRow := tableSchema.ColumnCount() == 1 && tableSchema.RowSize == 0

	for {
		line, readErr := readLine(reader)
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, readErr
		}

		lineNo++

		if len(line) == 0 && !blankIsRow {
			continue
		}

		fields := bytes.Split(line, []byte{FieldSeparator})

		if _, err := t.AppendTokens(fields); err != nil {
			if errors.Is(err, ErrArity) {
				return nil, fmt.Errorf("%w: line %d: %s", ErrRowSyntax, lineNo, err.Error())
			}
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	slog.Debug("table loaded", "table", t.Name(), "columns", t.Schema.ColumnCount(), "rows", t.RowCount(), "row_size", t.Schema.RowSize)

	return t, nil
}

// readLine returns the next line without its line ending, io.EOF only when
// nothing is left.
func readLine(reader *bufio.Reader) ([]byte, error) {

	line, err := reader.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || len(line) == 0 {
			return nil, err
		}
	}

	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})

	return line, nil
}
