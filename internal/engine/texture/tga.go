package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes uncompressed and RLE true-color TGA data with 24 or 32
// bits per pixel. The standard library has no TGA decoder.
func DecodeTGA(data []byte) (*image.NRGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has empty dimensions %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := &tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// pixel reads one BGR(A) pixel from the source.
func (d *tgaDecoder) pixel() (color.NRGBA, bool) {
	if d.pos+d.bpp > len(d.src) {
		return color.NRGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	d.pos += d.bpp
	return c, true
}

// set stores pixel n in file order, honoring the origin bit.
func (d *tgaDecoder) set(n int, c color.NRGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
}

func (d *tgaDecoder) raw() error {
	total := d.width * d.height
	if len(d.src) < total*d.bpp {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for n := 0; n < total; n++ {
		c, _ := d.pixel()
		d.set(n, c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	n := 0
	for n < total {
		if d.pos >= len(d.src) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", n, total)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", n, total)
			}
			for i := 0; i < count && n < total; i++ {
				d.set(n, c)
				n++
			}
			continue
		}
		for i := 0; i < count && n < total; i++ {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("TGA RLE data truncated at pixel %d of %d", n, total)
			}
			d.set(n, c)
			n++
		}
	}
	return nil
}
