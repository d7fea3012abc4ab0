package store

import "encoding/binary"

var byteOrder = binary.LittleEndian

func getInt32(data []byte) int32 {
	return int32(byteOrder.Uint32(data))
}

func putInt32(data []byte, v int32) {
	byteOrder.PutUint32(data, uint32(v))
}
