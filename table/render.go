package table

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dot5enko/miniql/schema"
)

const DefaultPrintWidth = 25

// Print renders the column names and then every row, each cell right aligned
// to width and followed by a space.
func (t *Table) Print(w io.Writer, width int) error {

	if width <= 0 {
		width = DefaultPrintWidth
	}

	bw := bufio.NewWriter(w)

	for _, col := range t.Schema.Columns {
		fmt.Fprintf(bw, "%*s ", width, col.Name)
	}
	bw.WriteByte('\n')

	for row := 0; row < t.RowCount(); row++ {
		for colIdx, col := range t.Schema.Columns {

			value, getErr := t.Rows.Get(row, colIdx)
			if getErr != nil {
				return getErr
			}

			switch col.Type {
			case schema.IntFieldType:
				fmt.Fprintf(bw, "%*d ", width, value.Int)
			default:
				fmt.Fprintf(bw, "%*s ", width, value.String())
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// PrintSummary writes the table name and the packed layout of every column.
func (t *Table) PrintSummary(w io.Writer) error {

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "table %s\n", t.Schema.Name)

	for _, col := range t.Schema.Columns {
		fmt.Fprintf(bw, "column %s type %s count %d offset %d\n", col.Name, col.Type.String(), col.RepeatCount, col.Offset)
	}
	bw.WriteByte('\n')

	return bw.Flush()
}
