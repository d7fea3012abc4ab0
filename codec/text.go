package codec

import "bytes"

// TextPad fills the tail of a CHAR field when the source is shorter than the
// field.
const TextPad byte = 0x00

// DecodeText keeps the raw token, cut to the field width.
func DecodeText(token []byte, repeatCount int) []byte {
	if len(token) > repeatCount {
		return token[:repeatCount]
	}
	return token
}

// EncodeText returns the stored bytes as they are, embedded zero bytes
// included.
func EncodeText(field []byte) []byte {
	return field
}

// DisplayText stops at the first pad byte, the way the table is printed.
func DisplayText(field []byte) string {
	if idx := bytes.IndexByte(field, TextPad); idx >= 0 {
		return string(field[:idx])
	}
	return string(field)
}
