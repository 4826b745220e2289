// Package capture saves rendered frames as PNG screenshots.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// PixelSource reads back the last rendered frame as bottom-up RGBA rows.
type PixelSource interface {
	ReadPixels() (pixels []byte, width, height int, err error)
}

// Capture writes screenshots to a directory.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capture handler writing <prefix>_<timestamp>.png files.
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename generates a screenshot filename without saving.
func (c *Capture) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", c.prefix, timestamp)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}

// Frame reads the current frame from src and saves it.
func (c *Capture) Frame(src PixelSource) (string, error) {
	pixels, width, height, err := src.ReadPixels()
	if err != nil {
		return "", fmt.Errorf("reading pixels: %w", err)
	}
	return c.SavePixels(pixels, width, height)
}

// SavePixels saves RGBA pixel data with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return c.Save(img)
}

// Save encodes img as PNG.
func (c *Capture) Save(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, file.Close()
}
