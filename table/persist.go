package table

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo serializes the table in the same format Load reads.
//
// The header line carries one `|` less than there are columns, CHAR fields
// are written as their full stored width.
func (t *Table) WriteTo(w io.Writer) (int64, error) {

	counter := &countingWriter{w: w}
	bw := bufio.NewWriter(counter)

	columns := t.Schema.Columns

	bw.WriteString(t.Schema.Name)
	if len(columns) > 1 {
		bw.WriteString(strings.Repeat(string(FieldSeparator), len(columns)-1))
	}
	bw.WriteByte('\n')

	for idx, col := range columns {
		if idx > 0 {
			bw.WriteByte(FieldSeparator)
		}
		bw.WriteString(col.Definition())
	}
	bw.WriteByte('\n')

	for row := 0; row < t.RowCount(); row++ {
		for colIdx := range columns {
			if colIdx > 0 {
				bw.WriteByte(FieldSeparator)
			}

			value, getErr := t.Rows.Get(row, colIdx)
			if getErr != nil {
				return counter.n, fmt.Errorf("unable to encode row %d: %w", row, getErr)
			}

			bw.Write(value.Encode())
		}
		bw.WriteByte('\n')
	}

	flushErr := bw.Flush()
	return counter.n, flushErr
}
