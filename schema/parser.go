package schema

import (
	"fmt"
	"log/slog"
	"strconv"
)

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// ParseTableName returns the first run of letters found on the line, the rest
// of the line is ignored.
func ParseTableName(line string, limits Limits) (string, error) {
	limits = limits.WithDefaults()

	pos := 0
	for pos < len(line) && !isAlpha(line[pos]) {
		pos++
	}

	start := pos
	for pos < len(line) && isAlpha(line[pos]) {
		pos++
	}

	name := line[start:pos]
	if name == "" {
		return "", fmt.Errorf("%w: table name line has no name", ErrSchemaSyntax)
	}

	if len(name) > limits.MaxNameLength {
		return "", fmt.Errorf("%w: table name `%s` is longer than %d bytes", ErrNameTooLong, name, limits.MaxNameLength)
	}

	return name, nil
}

type parserState uint8

const (
	nameState parserState = iota
	typeState
)

type columnParser struct {
	schema *Schema
	line   string
	pos    int

	state       parserState
	name        string
	typeName    string
	repeatCount int
	repeatSeen  bool
}

// ParseColumns consumes a column definition line (`id INT|name CHAR(25)`) and
// appends every column to the schema.
func ParseColumns(s *Schema, line string) error {
	p := &columnParser{
		schema: s,
		line:   line,
	}
	p.reset()

	return p.run()
}

func (p *columnParser) reset() {
	p.state = nameState
	p.name = ""
	p.typeName = ""
	p.repeatCount = 1
	p.repeatSeen = false
}

func (p *columnParser) run() error {
	for {
		for p.pos < len(p.line) && isSpace(p.line[p.pos]) {
			p.pos++
		}

		if p.pos >= len(p.line) {
			return p.finalize()
		}

		ch := p.line[p.pos]

		switch {
		case isAlpha(ch) && p.state == nameState:
			p.name = p.readName()
			p.state = typeState

		case isAlpha(ch):
			start := p.pos
			word := p.readWord()

			if p.typeName == "" && !p.repeatSeen {
				p.typeName = word
			} else {
				return fmt.Errorf("%w: unexpected word `%s` at position %d", ErrSchemaSyntax, word, start)
			}

		case ch == '|':
			if err := p.finalize(); err != nil {
				return err
			}
			p.pos++
			p.reset()

		case ch == '(' && p.state == typeState:
			if err := p.readRepeatCount(); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: unexpected character %q at position %d", ErrSchemaSyntax, ch, p.pos)
		}
	}
}

// readName accepts letters, digits and underscores after a leading letter.
func (p *columnParser) readName() string {
	start := p.pos
	for p.pos < len(p.line) && (isAlpha(p.line[p.pos]) || isDigit(p.line[p.pos]) || p.line[p.pos] == '_') {
		p.pos++
	}
	return p.line[start:p.pos]
}

func (p *columnParser) readWord() string {
	start := p.pos
	for p.pos < len(p.line) && isAlpha(p.line[p.pos]) {
		p.pos++
	}
	return p.line[start:p.pos]
}

func (p *columnParser) readRepeatCount() error {

	if p.repeatSeen {
		return fmt.Errorf("%w: repeated count for column `%s` at position %d", ErrSchemaSyntax, p.name, p.pos)
	}

	// skip (
	p.pos++

	start := p.pos
	for p.pos < len(p.line) && isDigit(p.line[p.pos]) {
		p.pos++
	}

	if start == p.pos {
		if p.pos >= len(p.line) {
			return fmt.Errorf("%w: unexpected end of line in count for column `%s`", ErrSchemaSyntax, p.name)
		}
		return fmt.Errorf("%w: unexpected character %q at position %d", ErrSchemaSyntax, p.line[p.pos], p.pos)
	}

	if p.pos >= len(p.line) || p.line[p.pos] != ')' {
		return fmt.Errorf("%w: unterminated count for column `%s` at position %d", ErrSchemaSyntax, p.name, p.pos)
	}

	count, convErr := strconv.ParseInt(p.line[start:p.pos], 10, 32)
	if convErr != nil {
		return fmt.Errorf("%w: count `%s` for column `%s` is out of range", ErrSchemaSyntax, p.line[start:p.pos], p.name)
	}

	if count <= 0 {
		return fmt.Errorf("%w: count for column `%s` must be positive, got %d", ErrSchemaSyntax, p.name, count)
	}

	// skip )
	p.pos++

	p.repeatCount = int(count)
	p.repeatSeen = true

	return nil
}

func (p *columnParser) finalize() error {

	if p.name == "" {
		return fmt.Errorf("%w: missing column name at position %d", ErrSchemaSyntax, p.pos)
	}

	typ, known := FieldTypeFromName(p.typeName)
	if !known {
		slog.Warn("unknown column type, column will be ignored", "column", p.name, "type", p.typeName)
	}

	_, addErr := p.schema.AddColumn(p.name, typ, p.repeatCount)
	return addErr
}

// Parse builds a schema from the table name line and the column line.
func Parse(nameLine, columnLine string, limits Limits) (*Schema, error) {

	name, nameErr := ParseTableName(nameLine, limits)
	if nameErr != nil {
		return nil, nameErr
	}

	s := New(name, limits)

	if err := ParseColumns(s, columnLine); err != nil {
		return nil, err
	}

	return s, nil
}
