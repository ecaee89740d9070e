// Package gfxtest provides a gfx.Context that records every call instead of
// talking to a GPU.
package gfxtest

import (
	"fmt"

	"GPU_shape_exercises/gfx"
)

// Call is one recorded context call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Draw is a recorded DrawElements call.
type Draw struct {
	Mode       gfx.Mode
	Count      int
	Type       gfx.IndexType
	ByteOffset int
}

type program struct {
	vertexID, fragmentID string
}

// Recorder implements gfx.Context. Known attribute and uniform names resolve
// to locations in the order they are first asked for.
type Recorder struct {
	// FailShaders lists identifiers CreateProgram rejects.
	FailShaders map[string]bool
	// Uniforms restricts which uniform names resolve. Nil accepts every name.
	Uniforms map[string]bool
	// UniformErr fails every uniform lookup of a known program.
	UniformErr error

	Calls    []Call
	Draws    []Draw
	Buffers  map[gfx.Buffer][]byte
	Targets  map[gfx.Buffer]gfx.BufferTarget
	Enabled  map[int]gfx.Buffer
	Index    gfx.Buffer
	Current  gfx.Program
	Values1f map[int]float32

	programs map[gfx.Program]program
	attribs  map[string]int
	uniforms map[string]int
	nextBuf  gfx.Buffer
	nextProg gfx.Program
}

func NewRecorder() *Recorder {
	return &Recorder{
		FailShaders: map[string]bool{},
		Buffers:     map[gfx.Buffer][]byte{},
		Targets:     map[gfx.Buffer]gfx.BufferTarget{},
		Enabled:     map[int]gfx.Buffer{},
		Values1f:    map[int]float32{},
		programs:    map[gfx.Program]program{},
		attribs:     map[string]int{},
		uniforms:    map[string]int{},
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

// Reset forgets recorded calls and draws but keeps created resources and
// enable state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.Draws = nil
}

// Ops returns the names of the recorded calls in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

func (r *Recorder) CreateProgram(vertexID, fragmentID string) (gfx.Program, error) {
	r.record("CreateProgram", vertexID, fragmentID)
	for _, id := range []string{vertexID, fragmentID} {
		if r.FailShaders[id] {
			return gfx.NoProgram, fmt.Errorf("%w: %q", gfx.ErrUnknownShader, id)
		}
	}
	r.nextProg++
	r.programs[r.nextProg] = program{vertexID: vertexID, fragmentID: fragmentID}
	return r.nextProg, nil
}

func (r *Recorder) UseProgram(p gfx.Program) {
	r.record("UseProgram", p)
	r.Current = p
}

func (r *Recorder) AttribLocation(p gfx.Program, name string) (int, error) {
	if _, ok := r.programs[p]; !ok {
		return -1, gfx.ErrUnknownProgram
	}
	loc, ok := r.attribs[name]
	if !ok {
		loc = len(r.attribs)
		r.attribs[name] = loc
	}
	return loc, nil
}

func (r *Recorder) UniformLocation(p gfx.Program, name string) (int, error) {
	if _, ok := r.programs[p]; !ok {
		return -1, gfx.ErrUnknownProgram
	}
	if r.UniformErr != nil {
		return -1, r.UniformErr
	}
	if r.Uniforms != nil && !r.Uniforms[name] {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUnknownUniform, name)
	}
	loc, ok := r.uniforms[name]
	if !ok {
		loc = len(r.uniforms)
		r.uniforms[name] = loc
	}
	return loc, nil
}

func (r *Recorder) CreateBuffer(target gfx.BufferTarget, data []byte) (gfx.Buffer, error) {
	r.record("CreateBuffer", target, len(data))
	r.nextBuf++
	r.Buffers[r.nextBuf] = append([]byte(nil), data...)
	r.Targets[r.nextBuf] = target
	return r.nextBuf, nil
}

func (r *Recorder) EnableVertexAttrib(loc int, b gfx.Buffer, components int, typ gfx.ComponentType) {
	r.record("EnableVertexAttrib", loc, b, components)
	r.Enabled[loc] = b
}

func (r *Recorder) DisableVertexAttrib(loc int) {
	r.record("DisableVertexAttrib", loc)
	delete(r.Enabled, loc)
}

func (r *Recorder) BindIndexBuffer(b gfx.Buffer) {
	r.record("BindIndexBuffer", b)
	r.Index = b
}

func (r *Recorder) UnbindIndexBuffer() {
	r.record("UnbindIndexBuffer")
	r.Index = gfx.NoBuffer
}

func (r *Recorder) Uniform1f(loc int, v float32) {
	r.record("Uniform1f", loc, v)
	r.Values1f[loc] = v
}

func (r *Recorder) UniformMatrix4fv(loc int, m [16]float32) {
	r.record("UniformMatrix4fv", loc)
}

func (r *Recorder) DrawElements(mode gfx.Mode, count int, typ gfx.IndexType, byteOffset int) {
	r.record("DrawElements", mode, count, typ, byteOffset)
	r.Draws = append(r.Draws, Draw{Mode: mode, Count: count, Type: typ, ByteOffset: byteOffset})
}
