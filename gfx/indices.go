package gfx

import "fmt"

// Indices owns an element array buffer of 16 bit indices.
type Indices struct {
	ctx    Context
	Buffer Buffer
	Count  int
	Type   IndexType
}

func NewIndices(ctx Context, data []uint16) (*Indices, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("indices: empty index table")
	}
	buf, err := ctx.CreateBuffer(ElementArrayBuffer, Uint16Bytes(data))
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	return &Indices{ctx: ctx, Buffer: buf, Count: len(data), Type: UnsignedShort}, nil
}

func (ix *Indices) Enable() {
	ix.ctx.BindIndexBuffer(ix.Buffer)
}

func (ix *Indices) Disable() {
	ix.ctx.UnbindIndexBuffer()
}
