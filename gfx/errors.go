package gfx

import (
	"errors"
	"fmt"
)

var (
	ErrNotReady         = errors.New("shape is not ready to render")
	ErrUnknownShader    = errors.New("unknown shader identifier")
	ErrUnknownAttribute = errors.New("unknown vertex attribute")
	ErrUnknownUniform   = errors.New("unknown uniform")
	ErrUnknownProgram   = errors.New("unknown program")
	ErrNoFrame          = errors.New("no frame is being recorded")
)

// ShaderError is returned when a shape's shader pair cannot be turned into a
// program. Err holds the backend's reason (missing source, compile or link log).
type ShaderError struct {
	Shape      string
	VertexID   string
	FragmentID string
	Err        error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf(
		"%s shader pipeline failed to compile (vertex shader id: %q, fragment shader id: %q): %v",
		e.Shape, e.VertexID, e.FragmentID, e.Err,
	)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}
