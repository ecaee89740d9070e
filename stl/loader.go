// Package stl reads and writes geometry tables as binary STL files.
package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"GPU_shape_exercises/gfx"
	"GPU_shape_exercises/model"
	vm "GPU_shape_exercises/vector_math"
)

const (
	HEADER_SIZE   = 80
	TRIANGLE_SIZE = 50
	// Indices are 16 bit, so a decoded table can address at most this many
	// unshared triangle vertices.
	MAX_TRIANGLES = math.MaxUint16 / 3
)

var ErrTruncated = errors.New("stl: truncated file")

// ReadStlFile decodes a binary STL file into a triangle list geometry.
func ReadStlFile(path string) (*model.Geometry, error) {
	log.Printf("Reading stl file %s", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Successfully read stl file %s, Triangle Count: %d", path, len(g.Indices)/3)
	return g, nil
}

// WriteStlFile encodes g into a binary STL file at path.
func WriteStlFile(path string, name string, g *model.Geometry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, name, g); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Successfully wrote stl file %s", path)
	return nil
}

// Decode reads a binary STL stream. Every triangle gets its own three
// vertices and the result is drawn as a single triangle batch.
func Decode(r io.Reader) (*model.Geometry, error) {
	header := make([]byte, HEADER_SIZE+4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrTruncated
	}
	tCnt := binary.LittleEndian.Uint32(header[HEADER_SIZE:])
	if tCnt == 0 {
		return nil, errors.New("stl: no triangles")
	}
	if tCnt > MAX_TRIANGLES {
		return nil, fmt.Errorf("stl: %d triangles exceed the 16 bit index range", tCnt)
	}

	body := make([]byte, int(tCnt)*TRIANGLE_SIZE)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, ErrTruncated
	}

	positions := make([]float32, 0, tCnt*9)
	indices := make([]uint16, 0, tCnt*3)
	for i := 0; i < len(body); i += TRIANGLE_SIZE {
		// 12 byte normal, three 12 byte vertices, 2 byte attribute count
		for v := 0; v < 3; v++ {
			p := toVec3(body[i+12+12*v : i+24+12*v])
			positions = append(positions, p.X, p.Y, p.Z)
			indices = append(indices, uint16(len(indices)))
		}
	}
	return &model.Geometry{
		Positions: positions,
		Indices:   indices,
		Batches:   []model.Batch{{Mode: gfx.Triangles, Count: len(indices)}},
	}, nil
}

// Encode writes every triangle of g with a face normal derived from its
// winding. name is stored in the header.
func Encode(w io.Writer, name string, g *model.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	tris := g.Triangles()

	header := make([]byte, HEADER_SIZE+4)
	copy(header, name)
	binary.LittleEndian.PutUint32(header[HEADER_SIZE:], uint32(len(tris)))
	if _, err := w.Write(header); err != nil {
		return err
	}

	rec := make([]byte, TRIANGLE_SIZE)
	for _, t := range tris {
		a, b, c := toVec3s(g.Vertex(t[0])), toVec3s(g.Vertex(t[1])), toVec3s(g.Vertex(t[2]))
		normal := b.Sub(a).Cross(c.Sub(a)).Norm()
		for i, v := range []vm.Vec3{normal, a, b, c} {
			putVec3(rec[12*i:], v)
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func toVec3s(p [3]float32) vm.Vec3 {
	return vm.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func toVec3(bytes []byte) vm.Vec3 {
	return vm.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	bits := binary.LittleEndian.Uint32(bytes)
	return math.Float32frombits(bits)
}

func putVec3(b []byte, v vm.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}
