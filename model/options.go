package model

type options struct {
	sides          int
	vertexShader   string
	fragmentShader string
	timeUniform    string
}

// Option customizes shape construction.
type Option func(*options)

// WithSides sets the tessellation of the shape's circular parts.
func WithSides(n int) Option {
	return func(o *options) {
		o.sides = n
	}
}

// WithShaders overrides the identifiers of the shader pair. Empty values keep
// the default "<Name>-vertex-shader" / "<Name>-fragment-shader".
func WithShaders(vertexID, fragmentID string) Option {
	return func(o *options) {
		if vertexID != "" {
			o.vertexShader = vertexID
		}
		if fragmentID != "" {
			o.fragmentShader = fragmentID
		}
	}
}

// WithTimeUniform names the float uniform SetTime writes to. The shape runs
// without one if the program does not declare it.
func WithTimeUniform(name string) Option {
	return func(o *options) {
		o.timeUniform = name
	}
}

func newOptions(name string, defaultSides int, opts []Option) options {
	o := options{
		sides:          defaultSides,
		vertexShader:   name + "-vertex-shader",
		fragmentShader: name + "-fragment-shader",
		timeUniform:    "t",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sides <= 0 {
		o.sides = defaultSides
	}
	return o
}
