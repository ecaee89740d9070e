package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/nfnt/resize"
)

// Image returns the frame at the requested size, downsampling the
// supersampled buffer when needed.
func (c *Context) Image() image.Image {
	if c.supersample == 1 {
		return c.color
	}
	return resize.Resize(uint(c.width), uint(c.height), c.color, resize.Lanczos3)
}

func (c *Context) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

func (c *Context) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Successfully wrote %dx%d snapshot to %s", c.width, c.height, path)
	return nil
}
