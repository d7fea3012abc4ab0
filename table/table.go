package table

import (
	"errors"
	"fmt"

	"github.com/dot5enko/miniql/schema"
	"github.com/dot5enko/miniql/store"
)

var (
	ErrRowSyntax = errors.New("row syntax error")
	ErrArity     = errors.New("value count does not match column count")
)

type Table struct {
	Schema *schema.Schema
	Rows   *store.RowStore
}

func New(s *schema.Schema, maxBytes int) *Table {
	return &Table{
		Schema: s,
		Rows:   store.NewRowStore(s, maxBytes),
	}
}

func (t *Table) Name() string {
	return t.Schema.Name
}

func (t *Table) RowCount() int {
	return t.Rows.Rows()
}

// AppendTokens appends one row, assigning raw tokens to columns by position.
// The arity is checked before the row is allocated.
func (t *Table) AppendTokens(tokens [][]byte) (int, error) {

	columns := t.Schema.Columns

	if len(tokens) != len(columns) {
		return 0, fmt.Errorf("%w: got %d values, table `%s` has %d columns", ErrArity, len(tokens), t.Schema.Name, len(columns))
	}

	row, appendErr := t.Rows.AppendRow()
	if appendErr != nil {
		return 0, appendErr
	}

	for colIdx, col := range columns {
		if err := t.Rows.Set(row, colIdx, store.DecodeValue(col, tokens[colIdx])); err != nil {
			return row, fmt.Errorf("unable to set column `%s` of row %d: %w", col.Name, row, err)
		}
	}

	return row, nil
}
