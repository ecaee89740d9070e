package model

import (
	"errors"
	"fmt"

	"GPU_shape_exercises/gfx"
)

// Batch is a contiguous run of indices drawn with a single DrawElements call.
type Batch struct {
	Mode  gfx.Mode
	Count int
}

// Geometry is the position/index table of a shape together with the batches
// that partition its indices. It is built once and never modified.
type Geometry struct {
	Positions []float32
	Indices   []uint16
	Batches   []Batch
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Validate checks that positions are whole triples, every index addresses an
// existing vertex and the batches cover the index table exactly.
func (g *Geometry) Validate() error {
	if len(g.Positions) == 0 || len(g.Positions)%3 != 0 {
		return fmt.Errorf("geometry: %d position values do not form triples", len(g.Positions))
	}
	n := g.VertexCount()
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("geometry: index %d at position %d out of range [0, %d)", idx, i, n)
		}
	}
	if len(g.Batches) == 0 {
		return errors.New("geometry: no draw batches")
	}
	total := 0
	for i, b := range g.Batches {
		if b.Count <= 0 {
			return fmt.Errorf("geometry: batch %d has non-positive count %d", i, b.Count)
		}
		total += b.Count
	}
	if total != len(g.Indices) {
		return fmt.Errorf("geometry: batches cover %d of %d indices", total, len(g.Indices))
	}
	return nil
}

// Offsets returns the byte offset into the index buffer at which each batch
// starts, for indices of type t.
func (g *Geometry) Offsets(t gfx.IndexType) []int {
	offsets := make([]int, len(g.Batches))
	offset := 0
	for i, b := range g.Batches {
		offsets[i] = offset
		offset += b.Count * t.ByteWidth()
	}
	return offsets
}

// uniformBatches splits count indices into runs of size with the same mode.
func uniformBatches(mode gfx.Mode, size int, count int) []Batch {
	batches := make([]Batch, 0, count/size)
	for i := 0; i < count/size; i++ {
		batches = append(batches, Batch{Mode: mode, Count: size})
	}
	return batches
}

// Triangles expands every batch into independent triangles of vertex indices.
func (g *Geometry) Triangles() [][3]uint32 {
	var tris [][3]uint32
	start := 0
	for _, b := range g.Batches {
		run := make([]uint32, b.Count)
		for i := range run {
			run[i] = uint32(g.Indices[start+i])
		}
		tris = append(tris, gfx.Triangulate(b.Mode, run)...)
		start += b.Count
	}
	return tris
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i uint32) [3]float32 {
	return [3]float32{g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2]}
}
