package gfx

import "fmt"

// Uniform is a named shader uniform of a program.
type Uniform struct {
	ctx      Context
	Name     string
	Location int
}

func NewUniform(ctx Context, p Program, name string) (*Uniform, error) {
	loc, err := ctx.UniformLocation(p, name)
	if err != nil {
		return nil, fmt.Errorf("uniform %q: %w", name, err)
	}
	return &Uniform{ctx: ctx, Name: name, Location: loc}, nil
}

// Set1f updates a float uniform. The owning program must be in use.
func (u *Uniform) Set1f(v float32) {
	u.ctx.Uniform1f(u.Location, v)
}

// SetMatrix4 updates a mat4 uniform from column-major values.
func (u *Uniform) SetMatrix4(m [16]float32) {
	u.ctx.UniformMatrix4fv(u.Location, m)
}
