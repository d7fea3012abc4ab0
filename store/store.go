package store

import (
	"fmt"
	"math"

	"github.com/dot5enko/miniql/codec"
	"github.com/dot5enko/miniql/schema"
)

// RowStore keeps all rows of a table back to back in one byte arena.
//
// *------------------------------------*
// | row 0 | row 1 | ... | row n-1      |
// *------------------------------------*
//
// Every row is exactly schema.RowSize bytes, field j of row i lives at
// i*RowSize + Columns[j].Offset.
type RowStore struct {
	schema *schema.Schema

	buffer []byte
	rows   int

	// 0 means unlimited
	maxBytes int
}

func NewRowStore(s *schema.Schema, maxBytes int) *RowStore {
	return &RowStore{
		schema:   s,
		buffer:   []byte{},
		maxBytes: maxBytes,
	}
}

// FromBytes restores a store of rows rows from a raw arena, the data is
// copied.
func FromBytes(s *schema.Schema, data []byte, rows int, maxBytes int) (*RowStore, error) {

	rs := NewRowStore(s, maxBytes)

	if rows < 0 || (rows > 0 && s.RowSize > math.MaxInt/rows) || len(data) != rows*s.RowSize {
		return nil, fmt.Errorf("%w: %d bytes for %d rows of %d bytes", ErrBufferSize, len(data), rows, s.RowSize)
	}

	if maxBytes > 0 && len(data) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceed the limit of %d", ErrAllocation, len(data), maxBytes)
	}

	rs.buffer = make([]byte, len(data))
	copy(rs.buffer, data)
	rs.rows = rows

	return rs, nil
}

func FieldOffset(rowSize, row int, col schema.Column) int {
	return row*rowSize + col.Offset
}

func (rs *RowStore) Schema() *schema.Schema {
	return rs.schema
}

func (rs *RowStore) Rows() int {
	return rs.rows
}

func (rs *RowStore) RowSize() int {
	return rs.schema.RowSize
}

// Len is the number of bytes in use.
func (rs *RowStore) Len() int {
	return len(rs.buffer)
}

// Bytes exposes the arena, callers must not modify it.
func (rs *RowStore) Bytes() []byte {
	return rs.buffer
}

func (rs *RowStore) column(row, col int) (schema.Column, error) {
	if row < 0 || row >= rs.rows {
		return schema.Column{}, fmt.Errorf("%w: row %d, rows %d", ErrRowOutOfRange, row, rs.rows)
	}
	if col < 0 || col >= len(rs.schema.Columns) {
		return schema.Column{}, fmt.Errorf("%w: column %d, columns %d", ErrColumnOutOfRange, col, len(rs.schema.Columns))
	}
	return rs.schema.Columns[col], nil
}

// Offset returns the absolute position of a field inside the arena.
func (rs *RowStore) Offset(row, col int) (int, error) {
	column, err := rs.column(row, col)
	if err != nil {
		return 0, err
	}
	return FieldOffset(rs.schema.RowSize, row, column), nil
}

// field returns a capacity clipped view of the field bytes.
func (rs *RowStore) field(row, col int, expected schema.FieldType) ([]byte, schema.Column, error) {

	column, err := rs.column(row, col)
	if err != nil {
		return nil, column, err
	}

	if column.Type != expected {
		return nil, column, fmt.Errorf("%w: column `%s` is %s, not %s", ErrTypeMismatch, column.Name, column.Type.String(), expected.String())
	}

	start := FieldOffset(rs.schema.RowSize, row, column)
	end := start + column.Size()

	return rs.buffer[start:end:end], column, nil
}

func (rs *RowStore) GetInt(row, col int) (int32, error) {
	data, _, err := rs.field(row, col, schema.IntFieldType)
	if err != nil {
		return 0, err
	}
	return getInt32(data), nil
}

func (rs *RowStore) SetInt(row, col int, value int32) error {
	data, _, err := rs.field(row, col, schema.IntFieldType)
	if err != nil {
		return err
	}
	putInt32(data, value)
	return nil
}

// GetText returns exactly RepeatCount bytes, there is no terminator.
func (rs *RowStore) GetText(row, col int) ([]byte, error) {
	data, _, err := rs.field(row, col, schema.CharFieldType)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SetText copies up to RepeatCount bytes, a shorter source is padded with
// codec.TextPad.
func (rs *RowStore) SetText(row, col int, value []byte) error {
	data, _, err := rs.field(row, col, schema.CharFieldType)
	if err != nil {
		return err
	}

	n := copy(data, value)
	for i := n; i < len(data); i++ {
		data[i] = codec.TextPad
	}

	return nil
}

func (rs *RowStore) Get(row, col int) (Value, error) {

	column, err := rs.column(row, col)
	if err != nil {
		return Value{}, err
	}

	switch column.Type {
	case schema.IntFieldType:
		v, getErr := rs.GetInt(row, col)
		return IntValue(v), getErr
	case schema.CharFieldType:
		v, getErr := rs.GetText(row, col)
		return TextValue(v), getErr
	case schema.InvalidFieldType:
		return Value{Type: schema.InvalidFieldType}, nil
	default:
		panic(fmt.Sprintf("unsupported field type: %d", column.Type))
	}
}

// Set writes a value into a field, invalid columns are left alone.
func (rs *RowStore) Set(row, col int, value Value) error {

	column, err := rs.column(row, col)
	if err != nil {
		return err
	}

	if column.Type == schema.InvalidFieldType {
		return nil
	}

	if column.Type != value.Type {
		return fmt.Errorf("%w: column `%s` is %s, value is %s", ErrTypeMismatch, column.Name, column.Type.String(), value.Type.String())
	}

	switch column.Type {
	case schema.IntFieldType:
		return rs.SetInt(row, col, value.Int)
	case schema.CharFieldType:
		return rs.SetText(row, col, value.Text)
	default:
		panic(fmt.Sprintf("unsupported field type: %d", column.Type))
	}
}

// AppendRow grows the arena by one zeroed row and returns its index.
func (rs *RowStore) AppendRow() (int, error) {

	rowSize := rs.schema.RowSize
	oldLen := len(rs.buffer)

	if oldLen > math.MaxInt-rowSize {
		return 0, fmt.Errorf("%w: size overflow at row %d", ErrAllocation, rs.rows)
	}

	newLen := oldLen + rowSize

	if rs.maxBytes > 0 && newLen > rs.maxBytes {
		return 0, fmt.Errorf("%w: %d bytes exceed the limit of %d", ErrAllocation, newLen, rs.maxBytes)
	}

	if newLen > cap(rs.buffer) {
		rs.grow(newLen)
	}

	rs.buffer = rs.buffer[:newLen]
	clear(rs.buffer[oldLen:newLen])

	idx := rs.rows
	rs.rows++

	return idx, nil
}

func (rs *RowStore) grow(atLeast int) {

	newCap := cap(rs.buffer) * 2
	if newCap < atLeast {
		newCap = atLeast
	}

	newBuf := make([]byte, len(rs.buffer), newCap)
	copy(newBuf, rs.buffer)

	rs.buffer = newBuf
}
