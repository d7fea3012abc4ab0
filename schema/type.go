package schema

type FieldType uint8

const (
	IntFieldType FieldType = iota
	CharFieldType
	InvalidFieldType
)

// IntSize is the packed width of an INT field.
const IntSize = 4

func (f FieldType) String() string {
	switch f {
	case IntFieldType:
		return "INT"
	case CharFieldType:
		return "CHAR"
	default:
		return "INVALID"
	}
}

// element size, repeat count not applied
func (f FieldType) Size() int {
	switch f {
	case IntFieldType:
		return IntSize
	case CharFieldType:
		return 1
	default:
		return 0
	}
}

// FieldTypeFromName resolves a declared type name. Unknown names map to
// InvalidFieldType and ok is false.
func FieldTypeFromName(name string) (typ FieldType, ok bool) {
	switch name {
	case "INT":
		return IntFieldType, true
	case "CHAR":
		return CharFieldType, true
	default:
		return InvalidFieldType, false
	}
}
