package schema

import "fmt"

const (
	DefaultMaxNameLength = 64
	DefaultMaxColumns    = 10
)

type Limits struct {
	MaxNameLength int
	MaxColumns    int
}

func DefaultLimits() Limits {
	return Limits{
		MaxNameLength: DefaultMaxNameLength,
		MaxColumns:    DefaultMaxColumns,
	}
}

func (l Limits) WithDefaults() Limits {
	if l.MaxNameLength <= 0 {
		l.MaxNameLength = DefaultMaxNameLength
	}
	if l.MaxColumns <= 0 {
		l.MaxColumns = DefaultMaxColumns
	}
	return l
}

type Schema struct {
	Name    string
	Columns []Column

	// sum of all column sizes, fixed once the column line is parsed
	RowSize int

	limits Limits
}

func New(name string, limits Limits) *Schema {
	return &Schema{
		Name:    name,
		Columns: []Column{},
		limits:  limits.WithDefaults(),
	}
}

// AddColumn packs the column right after the previous one.
func (s *Schema) AddColumn(name string, typ FieldType, repeatCount int) (Column, error) {

	if len(s.Columns) >= s.limits.MaxColumns {
		return Column{}, fmt.Errorf("%w: column `%s` exceeds the limit of %d columns", ErrTooManyColumns, name, s.limits.MaxColumns)
	}

	if len(name) > s.limits.MaxNameLength {
		return Column{}, fmt.Errorf("%w: column name `%s` is longer than %d bytes", ErrNameTooLong, name, s.limits.MaxNameLength)
	}

	if repeatCount <= 0 {
		return Column{}, fmt.Errorf("%w: column `%s` has non-positive repeat count %d", ErrSchemaSyntax, name, repeatCount)
	}

	col := Column{
		Name:        name,
		Type:        typ,
		RepeatCount: repeatCount,
		Offset:      s.RowSize,
	}

	s.Columns = append(s.Columns, col)
	s.RowSize += col.Size()

	return col, nil
}

func (s *Schema) ColumnCount() int {
	return len(s.Columns)
}
