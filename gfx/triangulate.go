package gfx

// Triangulate expands a primitive run of indices into independent triangles.
// Trailing indices that do not complete a triangle are dropped. Strip
// triangles alternate winding so every triangle keeps the strip's
// orientation.
func Triangulate(mode Mode, indices []uint32) [][3]uint32 {
	if len(indices) < 3 {
		return nil
	}
	var tris [][3]uint32
	switch mode {
	case Triangles:
		for i := 0; i+2 < len(indices); i += 3 {
			tris = append(tris, [3]uint32{indices[i], indices[i+1], indices[i+2]})
		}
	case TriangleFan:
		for i := 1; i+1 < len(indices); i++ {
			tris = append(tris, [3]uint32{indices[0], indices[i], indices[i+1]})
		}
	case TriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]uint32{indices[i], indices[i+1], indices[i+2]})
			} else {
				tris = append(tris, [3]uint32{indices[i+1], indices[i], indices[i+2]})
			}
		}
	}
	return tris
}
