// Package gfx describes the slice of a GL-style graphics context the shapes
// draw through. Backends (Vulkan, WebGL2, software raster) implement Context.
package gfx

// Program is an opaque handle to a linked shader pipeline.
type Program uint32

// Buffer is an opaque handle to an uploaded GPU buffer.
type Buffer uint32

// NoProgram and NoBuffer are never returned by a successful create call.
const (
	NoProgram Program = 0
	NoBuffer  Buffer  = 0
)

type Mode int

const (
	Triangles Mode = iota
	TriangleFan
	TriangleStrip
)

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "TRIANGLES"
	case TriangleFan:
		return "TRIANGLE_FAN"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	}
	return "UNKNOWN_MODE"
}

type IndexType int

const (
	UnsignedShort IndexType = iota
	UnsignedInt
)

// ByteWidth is the size of a single index in the index buffer.
func (t IndexType) ByteWidth() int {
	if t == UnsignedInt {
		return 4
	}
	return 2
}

func (t IndexType) String() string {
	if t == UnsignedInt {
		return "UNSIGNED_INT"
	}
	return "UNSIGNED_SHORT"
}

type ComponentType int

const (
	Float ComponentType = iota
)

func (t ComponentType) ByteWidth() int {
	return 4
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	if t == ElementArrayBuffer {
		return "ELEMENT_ARRAY_BUFFER"
	}
	return "ARRAY_BUFFER"
}

// Context is a single-threaded graphics context. Calls must come from the
// goroutine that owns the underlying surface.
type Context interface {
	// CreateProgram resolves both shader identifiers, then compiles and links
	// them. A failure is reported as an error and no program is created.
	CreateProgram(vertexID, fragmentID string) (Program, error)
	UseProgram(p Program)

	AttribLocation(p Program, name string) (int, error)
	UniformLocation(p Program, name string) (int, error)

	CreateBuffer(target BufferTarget, data []byte) (Buffer, error)

	EnableVertexAttrib(loc int, b Buffer, components int, typ ComponentType)
	DisableVertexAttrib(loc int)
	BindIndexBuffer(b Buffer)
	UnbindIndexBuffer()

	Uniform1f(loc int, v float32)
	UniformMatrix4fv(loc int, m [16]float32)

	// DrawElements draws count indices of the bound index buffer starting
	// byteOffset bytes into it.
	DrawElements(mode Mode, count int, typ IndexType, byteOffset int)
}
