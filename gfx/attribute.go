package gfx

import "fmt"

// Attribute owns a vertex buffer bound to a named shader input.
type Attribute struct {
	ctx        Context
	Name       string
	Location   int
	Buffer     Buffer
	Components int
	Type       ComponentType
	Count      int
}

// NewAttribute looks up name in p and uploads data as an array buffer holding
// len(data)/components vertices.
func NewAttribute(ctx Context, p Program, data []float32, name string, components int, typ ComponentType) (*Attribute, error) {
	if components < 1 || components > 4 {
		return nil, fmt.Errorf("attribute %q: invalid component count %d", name, components)
	}
	if len(data)%components != 0 {
		return nil, fmt.Errorf("attribute %q: %d values do not divide into %d components", name, len(data), components)
	}
	loc, err := ctx.AttribLocation(p, name)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	buf, err := ctx.CreateBuffer(ArrayBuffer, Float32Bytes(data))
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	return &Attribute{
		ctx:        ctx,
		Name:       name,
		Location:   loc,
		Buffer:     buf,
		Components: components,
		Type:       typ,
		Count:      len(data) / components,
	}, nil
}

func (a *Attribute) Enable() {
	a.ctx.EnableVertexAttrib(a.Location, a.Buffer, a.Components, a.Type)
}

func (a *Attribute) Disable() {
	a.ctx.DisableVertexAttrib(a.Location)
}
