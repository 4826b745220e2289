// Package gpu defines the explicit device-binding context that the render
// path passes down instead of relying on global graphics state.
package gpu

import "errors"

// Vertex layout shared by every mesh: position, normal, texcoord.
const (
	FloatsPerVertex = 8
	FloatSize       = 4
	Stride          = FloatsPerVertex * FloatSize // bytes

	PositionAttrib = 0
	NormalAttrib   = 1
	TexCoordAttrib = 2

	PositionOffset = 0  // bytes
	NormalOffset   = 12 // bytes
	TexCoordOffset = 24 // bytes
)

// Attribute describes one vertex attribute in the interleaved layout.
type Attribute struct {
	Location   uint32
	Components int32
	Offset     int
}

// Layout lists the attributes in location order.
var Layout = []Attribute{
	{Location: PositionAttrib, Components: 3, Offset: PositionOffset},
	{Location: NormalAttrib, Components: 3, Offset: NormalOffset},
	{Location: TexCoordAttrib, Components: 2, Offset: TexCoordOffset},
}

// MeshHandle identifies an uploaded vertex/index buffer pair.
type MeshHandle uint32

// TextureHandle identifies an uploaded texture.
type TextureHandle uint32

// PixelFormat is the channel layout of an Image.
type PixelFormat uint8

const (
	RGB PixelFormat = iota + 1
	RGBA
)

// Channels returns bytes per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

func (f PixelFormat) String() string {
	switch f {
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	}
	return "unknown"
}

// Image is tightly packed pixel data, bottom row first.
type Image struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []byte
}

// ErrBadImage is returned for images whose pixel data does not match the
// declared size and format.
var ErrBadImage = errors.New("gpu: malformed image")

// Validate checks that Pix holds exactly Width*Height pixels of Format.
func (img Image) Validate() error {
	ch := img.Format.Channels()
	if ch == 0 || img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*ch {
		return ErrBadImage
	}
	return nil
}

// Device uploads immutable buffers and issues draws. All calls happen on
// the frame-loop thread.
type Device interface {
	UploadMesh(vertices []float32, indices []uint32) (MeshHandle, error)
	UploadTexture(img Image) (TextureHandle, error)
	BindTexture(unit int, tex TextureHandle)
	DrawIndexed(mesh MeshHandle, indexCount int)
}
