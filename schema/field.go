package schema

import "strconv"

type Column struct {
	Name string
	Type FieldType

	// array width for CHAR, 1 for scalars
	RepeatCount int

	// byte offset inside a packed row
	Offset int
}

// Size is the number of bytes the column occupies inside a row.
func (c Column) Size() int {
	switch c.Type {
	case IntFieldType:
		// one int32 whatever the declared count
		return IntSize
	case CharFieldType:
		return c.Type.Size() * c.RepeatCount
	default:
		return 0
	}
}

// Definition renders the column the way the schema line declares it.
func (c Column) Definition() string {
	def := c.Name + " " + c.Type.String()
	if c.RepeatCount > 1 {
		def += "(" + strconv.Itoa(c.RepeatCount) + ")"
	}
	return def
}
