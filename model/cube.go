package model

import "GPU_shape_exercises/gfx"

const (
	CUBE_NAME          = "Cube"
	CUBE_DEFAULT_SIDES = 8
)

// cubeFaces lists the four corners of each face of the unit cube spanning
// (0,0,0) to (1,1,1), walked so that (0,1,2) and (0,2,3) split the face.
var cubeFaces = [6][4][3]float32{
	{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, // back
	{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, // right
	{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, // front
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, // left
	{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, // top
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, // bottom
}

// NewCubeGeometry builds the unit cube with four vertices per face so every
// face can be addressed on its own. Each face is drawn as two triangle
// batches of three indices.
func NewCubeGeometry() *Geometry {
	positions := make([]float32, 0, len(cubeFaces)*4*3)
	indices := make([]uint16, 0, len(cubeFaces)*6)
	for f, face := range cubeFaces {
		for _, corner := range face {
			positions = append(positions, corner[0], corner[1], corner[2])
		}
		base := uint16(4 * f)
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return &Geometry{
		Positions: positions,
		Indices:   indices,
		Batches:   uniformBatches(gfx.Triangles, 3, len(indices)),
	}
}

// NewCube constructs the cube render object. A side count passed through
// WithSides is accepted for symmetry with the cone and has no effect on the
// geometry.
func NewCube(ctx gfx.Context, opts ...Option) (*Shape, error) {
	o := newOptions(CUBE_NAME, CUBE_DEFAULT_SIDES, opts)
	return newShape(ctx, CUBE_NAME, NewCubeGeometry(), o)
}
