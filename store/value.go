package store

import (
	"github.com/dot5enko/miniql/codec"
	"github.com/dot5enko/miniql/schema"
)

// Value is a decoded field. Only the member matching Type is meaningful.
type Value struct {
	Type schema.FieldType

	Int  int32
	Text []byte
}

func IntValue(v int32) Value {
	return Value{Type: schema.IntFieldType, Int: v}
}

func TextValue(b []byte) Value {
	return Value{Type: schema.CharFieldType, Text: b}
}

// DecodeValue turns a raw token into a value for the given column.
func DecodeValue(col schema.Column, token []byte) Value {
	switch col.Type {
	case schema.IntFieldType:
		return IntValue(codec.DecodeInt(token))
	case schema.CharFieldType:
		return TextValue(codec.DecodeText(token, col.RepeatCount))
	default:
		return Value{Type: schema.InvalidFieldType}
	}
}

// Encode renders the value in the textual table format.
func (v Value) Encode() []byte {
	switch v.Type {
	case schema.IntFieldType:
		return []byte(codec.EncodeInt(v.Int))
	case schema.CharFieldType:
		return codec.EncodeText(v.Text)
	default:
		return nil
	}
}

// String is the printable form, CHAR fields stop at the first pad byte.
func (v Value) String() string {
	switch v.Type {
	case schema.IntFieldType:
		return codec.EncodeInt(v.Int)
	case schema.CharFieldType:
		return codec.DisplayText(v.Text)
	default:
		return ""
	}
}
