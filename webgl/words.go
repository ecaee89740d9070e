package webgl

import (
	"encoding/binary"
	"fmt"
	"math"
)

// float32Words reads little-endian vertex data back into the values the
// array buffer upload takes.
func float32Words(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("webgl: %d vertex bytes are not whole float32 values", len(data))
	}
	words := make([]float32, len(data)/4)
	for i := range words {
		words[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return words, nil
}

// uint16Words reads index data as 16 bit words. 32 bit indices keep their
// byte layout since both halves are uploaded in order.
func uint16Words(data []byte) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("webgl: %d index bytes are not whole uint16 values", len(data))
	}
	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return words, nil
}
