// Package texture decodes surface textures for the hole renderer.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

var errTGATruncated = errors.New("TGA pixel data truncated")

// tgaCanvas writes pixels in file order, honoring the descriptor's row order.
type tgaCanvas struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	next        int
}

func (c *tgaCanvas) full() bool {
	return c.next >= c.width*c.height
}

func (c *tgaCanvas) put(px color.RGBA) {
	x := c.next % c.width
	y := c.next / c.width
	if !c.topToBottom {
		y = c.height - 1 - y
	}
	c.img.SetRGBA(x, y, px)
	c.next++
}

// pixel reads one BGR(A) pixel.
func (c *tgaCanvas) pixel(data []byte) color.RGBA {
	px := color.RGBA{R: data[2], G: data[1], B: data[0], A: 255}
	if c.bpp == 4 {
		px.A = data[3]
	}
	return px
}

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10) TGA files.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	depth := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", depth)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	c := &tgaCanvas{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         depth / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = c.decodeRaw(data[offset:])
	} else {
		err = c.decodeRLE(data[offset:])
	}
	if err != nil {
		return nil, err
	}
	return c.img, nil
}

func (c *tgaCanvas) decodeRaw(data []byte) error {
	if len(data) < c.width*c.height*c.bpp {
		return errTGATruncated
	}
	for i := 0; !c.full(); i += c.bpp {
		c.put(c.pixel(data[i:]))
	}
	return nil
}

// decodeRLE tolerates a short final packet; missing pixels stay transparent.
func (c *tgaCanvas) decodeRLE(data []byte) error {
	i := 0
	for !c.full() && i < len(data) {
		header := data[i]
		i++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			if i+c.bpp > len(data) {
				return nil
			}
			px := c.pixel(data[i:])
			i += c.bpp
			for n := 0; n < count && !c.full(); n++ {
				c.put(px)
			}
			continue
		}

		for n := 0; n < count && !c.full(); n++ {
			if i+c.bpp > len(data) {
				return nil
			}
			c.put(c.pixel(data[i:]))
			i += c.bpp
		}
	}
	return nil
}

// ImageToRGBA converts any image.Image to *image.RGBA with its origin at (0, 0).
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	return rgba
}
