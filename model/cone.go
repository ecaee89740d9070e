package model

import (
	"fmt"

	"github.com/chewxy/math32"

	"GPU_shape_exercises/gfx"
	vm "GPU_shape_exercises/vector_math"
)

const (
	CONE_NAME          = "Cone"
	CONE_DEFAULT_SIDES = 20
	CONE_MIN_SIDES     = 3
	// 0 is the base center, n+1 the apex, leaving n perimeter vertices
	// within the range of a 16 bit index.
	CONE_MAX_SIDES = 65534
)

// NewConeGeometry builds a cone with a unit radius base in the XY plane
// centered at the origin and its apex one unit up the +Z axis.
//
// Vertex 0 is the base center, vertices 1..n walk the base perimeter and
// vertex n+1 is the apex. The index table holds two fans of n+2 indices each:
// the base (wound so it faces -Z) followed by the lateral surface.
func NewConeGeometry(n int) (*Geometry, error) {
	if n < CONE_MIN_SIDES || n > CONE_MAX_SIDES {
		return nil, fmt.Errorf("cone: side count %d outside [%d, %d]", n, CONE_MIN_SIDES, CONE_MAX_SIDES)
	}

	vertices := make([]vm.Vec3, 0, n+2)
	vertices = append(vertices, vm.Vec3{})
	dTheta := 2 * math32.Pi / float32(n)
	for i := 0; i < n; i++ {
		theta := float32(i) * dTheta
		vertices = append(vertices, vm.Vec3{X: math32.Cos(theta), Y: math32.Sin(theta)})
	}
	vertices = append(vertices, vm.Vec3{Z: 1})

	apex := uint16(n + 1)
	indices := make([]uint16, 0, 2*(n+2))

	indices = append(indices, 0)
	for i := n; i > 0; i-- {
		indices = append(indices, uint16(i))
	}
	indices = append(indices, uint16(n))

	indices = append(indices, apex)
	for i := 1; i <= n; i++ {
		indices = append(indices, uint16(i))
	}
	indices = append(indices, 1)

	return &Geometry{
		Positions: vm.Flatten(vertices),
		Indices:   indices,
		Batches:   uniformBatches(gfx.TriangleFan, n+2, len(indices)),
	}, nil
}

// NewCone constructs the cone render object. The side count defaults to
// CONE_DEFAULT_SIDES.
func NewCone(ctx gfx.Context, opts ...Option) (*Shape, error) {
	o := newOptions(CONE_NAME, CONE_DEFAULT_SIDES, opts)
	geom, err := NewConeGeometry(o.sides)
	if err != nil {
		return nil, err
	}
	return newShape(ctx, CONE_NAME, geom, o)
}
