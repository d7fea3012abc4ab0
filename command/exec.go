package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dot5enko/miniql/table"
)

// bytes the table file uses as row and field delimiters
const unstorable = string(table.FieldSeparator) + "\n\r"

// Interpreter runs commands against a single table.
type Interpreter struct {
	Table *table.Table
	Out   io.Writer

	// print width of a cell, table.DefaultPrintWidth when zero
	Width int
}

func NewInterpreter(t *table.Table, out io.Writer, width int) *Interpreter {
	return &Interpreter{
		Table: t,
		Out:   out,
		Width: width,
	}
}

// Run parses and executes a command. Syntax errors are reported before the
// table is touched.
func (it *Interpreter) Run(input string) error {

	cmd, parseErr := Parse(input)
	if parseErr != nil {
		return parseErr
	}

	return it.Execute(cmd)
}

func (it *Interpreter) Execute(cmd Command) error {

	switch c := cmd.(type) {
	case PrintCommand:
		return it.Table.Print(it.Out, it.Width)

	case AppendRowCommand:
		if err := it.appendRow(c); err != nil {
			return err
		}
		return it.Table.Print(it.Out, it.Width)

	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}

func (it *Interpreter) appendRow(c AppendRowCommand) error {

	columns := it.Table.Schema.Columns

	if len(c.Values) != len(columns) {
		return it.arityError(c)
	}

	for _, value := range c.Values {
		if strings.ContainsAny(value.Value, unstorable) {
			return &SyntaxError{
				Pos:      value.Pos,
				Expected: "value without '|' or line breaks",
				Found:    value,
				Err:      ErrUnstorableValue,
			}
		}
	}

	row, err := it.Table.AppendTokens(c.Tokens())
	if err != nil {
		return err
	}

	slog.Debug("row appended", "table", it.Table.Name(), "row", row)

	return nil
}

func (it *Interpreter) arityError(c AppendRowCommand) error {

	columns := len(it.Table.Schema.Columns)

	// point at the first missing or the first extra value
	var found Token
	if len(c.Values) > columns {
		found = c.Values[columns]
	} else {
		found = Token{Type: RParen, Value: ")"}
		if len(c.Values) > 0 {
			last := c.Values[len(c.Values)-1]
			found.Pos = last.Pos + len(last.Value)
		}
	}

	return &SyntaxError{
		Pos:      found.Pos,
		Expected: fmt.Sprintf("%d values", columns),
		Found:    found,
		Err:      fmt.Errorf("%w: got %d values", table.ErrArity, len(c.Values)),
	}
}
