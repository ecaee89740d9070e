package raster

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const MIN_CLIP_W = 1e-5

type shadedVertex struct {
	position mgl32.Vec4
	varying  mgl32.Vec4
}

type screenVertex struct {
	x, y, z float32
	invW    float32
	varying mgl32.Vec4
}

func (c *Context) toScreen(v shadedVertex) screenVertex {
	w := v.position.W()
	ndc := v.position.Vec3().Mul(1 / w)
	width := float32(c.color.Rect.Dx())
	height := float32(c.color.Rect.Dy())
	return screenVertex{
		x:       (ndc.X() + 1) / 2 * width,
		y:       (1 - ndc.Y()) / 2 * height,
		z:       ndc.Z(),
		invW:    1 / w,
		varying: v.varying.Mul(1 / w),
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// rasterize fills the triangle with both windings. Triangles reaching behind
// the eye are dropped instead of clipped.
func (c *Context) rasterize(tri [3]shadedVertex, fs FragmentShader, u *Uniforms) {
	for _, v := range tri {
		if v.position.W() < MIN_CLIP_W {
			return
		}
	}
	a, b, d := c.toScreen(tri[0]), c.toScreen(tri[1]), c.toScreen(tri[2])
	area := edge(a, b, d.x, d.y)
	if area == 0 {
		return
	}
	c.Triangles++

	bounds := c.color.Rect
	minX := clamp(int(math32.Floor(min3(a.x, b.x, d.x))), bounds.Min.X, bounds.Max.X-1)
	maxX := clamp(int(math32.Ceil(max3(a.x, b.x, d.x))), bounds.Min.X, bounds.Max.X-1)
	minY := clamp(int(math32.Floor(min3(a.y, b.y, d.y))), bounds.Min.Y, bounds.Max.Y-1)
	maxY := clamp(int(math32.Ceil(max3(a.y, b.y, d.y))), bounds.Min.Y, bounds.Max.Y-1)

	stride := bounds.Dx()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(b, d, px, py) / area
			w1 := edge(d, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*d.z
			if z < -1 || z > 1 {
				continue
			}
			at := y*stride + x
			if c.depthTest && z >= c.depth[at] {
				continue
			}
			invW := w0*a.invW + w1*b.invW + w2*d.invW
			varying := a.varying.Mul(w0).Add(b.varying.Mul(w1)).Add(d.varying.Mul(w2)).Mul(1 / invW)
			c.color.SetNRGBA(x, y, toNRGBA(fs(varying, u)))
			if c.depthTest {
				c.depth[at] = z
			}
		}
	}
}

func toNRGBA(v mgl32.Vec4) color.NRGBA {
	ch := func(f float32) uint8 {
		return uint8(clampf(f, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(v[0]), G: ch(v[1]), B: ch(v[2]), A: ch(v[3])}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func min3(a, b, c float32) float32 {
	return math32.Min(a, math32.Min(b, c))
}

func max3(a, b, c float32) float32 {
	return math32.Max(a, math32.Max(b, c))
}
