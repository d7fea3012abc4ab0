package codec

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// DecodeInt follows atoi rules: leading whitespace, an optional sign and the
// longest run of digits. A token without digits decodes to 0, values outside
// the int32 range saturate.
func DecodeInt(token []byte) int32 {
	pos := 0
	for pos < len(token) && isSpace(token[pos]) {
		pos++
	}

	negative := false
	if pos < len(token) && (token[pos] == '+' || token[pos] == '-') {
		negative = token[pos] == '-'
		pos++
	}

	var value int64
	for ; pos < len(token) && token[pos] >= '0' && token[pos] <= '9'; pos++ {
		value = value*10 + int64(token[pos]-'0')

		if value > math.MaxInt32+1 {
			value = math.MaxInt32 + 1
		}
	}

	if negative {
		value = -value
	}

	switch {
	case value > math.MaxInt32:
		return math.MaxInt32
	case value < math.MinInt32:
		return math.MinInt32
	}

	return int32(value)
}

func EncodeInt[T constraints.Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
