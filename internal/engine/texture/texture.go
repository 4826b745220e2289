// Package texture decodes image files into tightly packed, bottom-row-first
// pixel data and uploads them through a gpu.Device.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/logger"
)

// Kind is the material slot a texture feeds.
type Kind string

const (
	Diffuse  Kind = "texture_diffuse"
	Specular Kind = "texture_specular"
)

// ErrUnsupportedFormat is returned for images that are neither RGB nor RGBA.
var ErrUnsupportedFormat = errors.New("texture: unsupported pixel format")

// Texture is an uploaded image bound to a material slot.
type Texture struct {
	Handle gpu.TextureHandle
	Kind   Kind
	Path   string
}

// Load reads, decodes and uploads the image at path.
func Load(dev gpu.Device, path string, kind Kind) (Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Texture{}, fmt.Errorf("texture %s: %w", path, err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return Texture{}, fmt.Errorf("texture %s: %w", path, err)
	}
	packed, err := Pack(img)
	if err != nil {
		return Texture{}, fmt.Errorf("texture %s: %w", path, err)
	}
	h, err := dev.UploadTexture(packed)
	if err != nil {
		return Texture{}, fmt.Errorf("uploading texture %s: %w", path, err)
	}
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("width", packed.Width),
		zap.Int("height", packed.Height),
		zap.Stringer("format", packed.Format))
	return Texture{Handle: h, Kind: kind, Path: path}, nil
}

// Decode decodes image data. TGA is selected by the file extension of
// name; every other format is sniffed.
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Pack converts img to tightly packed bytes, bottom row first, as the GPU
// expects for texture coordinates with v pointing up.
//
// Opaque colour images (JPEG's YCbCr) become RGB; images carrying alpha,
// including paletted ones, become RGBA. Grayscale and CMYK images are
// rejected.
func Pack(img image.Image) (gpu.Image, error) {
	var format gpu.PixelFormat
	switch img.(type) {
	case *image.YCbCr:
		format = gpu.RGB
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		format = gpu.RGBA
	default:
		return gpu.Image{}, fmt.Errorf("%w: %T", ErrUnsupportedFormat, img)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ch := format.Channels()
	out := gpu.Image{Width: w, Height: h, Format: format, Pix: make([]byte, w*h*ch)}
	for y := 0; y < h; y++ {
		row := out.Pix[(h-1-y)*w*ch:]
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p := row[x*ch:]
			p[0], p[1], p[2] = c.R, c.G, c.B
			if ch == 4 {
				p[3] = c.A
			}
		}
	}
	return out, nil
}
