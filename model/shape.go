package model

import (
	"errors"
	"fmt"
	"log"

	"GPU_shape_exercises/gfx"
)

type State int

const (
	Uninitialized State = iota
	Constructing
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Constructing:
		return "Constructing"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Shape is a render object owning a shader program, a position attribute and
// an index buffer. It is built once by NewCone or NewCube and drawn any number
// of times with Render.
type Shape struct {
	ctx   gfx.Context
	name  string
	state State

	program  gfx.Program
	position *gfx.Attribute
	indices  *gfx.Indices
	time     *gfx.Uniform

	geometry *Geometry
	offsets  []int
}

func newShape(ctx gfx.Context, name string, geom *Geometry, o options) (*Shape, error) {
	s := &Shape{ctx: ctx, name: name, geometry: geom}
	if err := s.construct(o); err != nil {
		s.state = Failed
		return s, err
	}
	s.state = Ready
	return s, nil
}

func (s *Shape) construct(o options) error {
	s.state = Constructing
	if s.ctx == nil {
		return fmt.Errorf("%s: nil graphics context", s.name)
	}
	if err := s.geometry.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}

	program, err := s.ctx.CreateProgram(o.vertexShader, o.fragmentShader)
	if err != nil {
		return &gfx.ShaderError{
			Shape:      s.name,
			VertexID:   o.vertexShader,
			FragmentID: o.fragmentShader,
			Err:        err,
		}
	}
	s.program = program

	s.position, err = gfx.NewAttribute(s.ctx, program, s.geometry.Positions, "aPosition", 3, gfx.Float)
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	s.indices, err = gfx.NewIndices(s.ctx, s.geometry.Indices)
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	s.offsets = s.geometry.Offsets(s.indices.Type)

	if o.timeUniform != "" {
		u, err := gfx.NewUniform(s.ctx, program, o.timeUniform)
		switch {
		case err == nil:
			s.time = u
		case !errors.Is(err, gfx.ErrUnknownUniform):
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	log.Printf("Successfully created %s with %d vertices and %d draw batches", s.name, s.geometry.VertexCount(), len(s.geometry.Batches))
	return nil
}

// Render draws every batch of the shape and leaves the vertex attribute and
// index buffer disabled again. It returns gfx.ErrNotReady and draws nothing
// if construction did not succeed.
func (s *Shape) Render() error {
	if s == nil || s.state != Ready {
		return gfx.ErrNotReady
	}
	s.ctx.UseProgram(s.program)
	s.position.Enable()
	s.indices.Enable()
	for i, b := range s.geometry.Batches {
		s.ctx.DrawElements(b.Mode, b.Count, s.indices.Type, s.offsets[i])
	}
	s.position.Disable()
	s.indices.Disable()
	return nil
}

// SetTime updates the shape's time uniform. It is a no-op when the shape is not
// ready or its program has no such uniform.
func (s *Shape) SetTime(seconds float32) {
	if s == nil || s.state != Ready || s.time == nil {
		return
	}
	s.ctx.UseProgram(s.program)
	s.time.Set1f(seconds)
}

func (s *Shape) Name() string {
	return s.name
}

func (s *Shape) State() State {
	if s == nil {
		return Uninitialized
	}
	return s.state
}

func (s *Shape) Geometry() *Geometry {
	return s.geometry
}

func (s *Shape) HasTime() bool {
	return s.time != nil
}
