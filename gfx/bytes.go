package gfx

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"
)

// Float32Bytes encodes vertex data in the little endian layout GPUs read.
func Float32Bytes(values []float32) []byte {
	return f32.Bytes(binary.LittleEndian, values...)
}

func Uint16Bytes(values []uint16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}
