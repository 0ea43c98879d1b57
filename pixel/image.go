package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/juju/errors"
)

// Errors
var (
	ErrUnsupportedFormat = errors.New("pixel: unsupported pixel format")
	ErrShortBuffer       = errors.New("pixel: buffer too small for image")
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// PackedImage is an image over packed pixels of any byte aligned Format.
//
// Rows are Stride bytes apart, which may be more than the visible width when
// the memory holding the pixels is padded.
type PackedImage struct {
	Buffer
	Format Format
	Order  binary.ByteOrder
	model  color.Model
}

// NewPackedImage wraps pix without copying it. The pixel at Rect.Min is
// stored at offset zero.
func NewPackedImage(pix []byte, r image.Rectangle, stride int, format Format) (*PackedImage, error) {
	switch format.BitsPerPixel {
	case 8, 16, 24, 32:
	default:
		return nil, errors.Annotatef(ErrUnsupportedFormat, "%d bits per pixel", format.BitsPerPixel)
	}
	if r.Empty() {
		r = image.Rectangle{}
	} else if need := (r.Dy()-1)*stride + r.Dx()*format.BytesPerPixel(); stride < r.Dx()*format.BytesPerPixel() || len(pix) < need {
		return nil, errors.Annotatef(ErrShortBuffer, "%s with stride %d needs %d bytes, have %d", r.Size(), stride, need, len(pix))
	}
	return &PackedImage{
		Buffer: Buffer{
			Rect:   r,
			Pix:    pix,
			Stride: stride,
		},
		Format: format,
		Order:  binary.LittleEndian,
		model:  format.Model(),
	}, nil
}

func (p *PackedImage) ColorModel() color.Model {
	return p.model
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *PackedImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*p.Format.BytesPerPixel()
}

func (p *PackedImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Format.Unpack(p.load(p.PixOffset(x, y)))
}

func (p *PackedImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	p.store(p.PixOffset(x, y), p.Format.Pack(c))
}

// Fill sets every visible pixel to c, padding is left alone.
func (p *PackedImage) Fill(c color.Color) {
	v := p.Format.Pack(c)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x, i := p.Rect.Min.X, p.PixOffset(p.Rect.Min.X, y); x < p.Rect.Max.X; x, i = x+1, i+p.Format.BytesPerPixel() {
			p.store(i, v)
		}
	}
}

func (p *PackedImage) load(i int) uint32 {
	switch p.Format.BytesPerPixel() {
	case 1:
		return uint32(p.Pix[i])
	case 2:
		return uint32(p.Order.Uint16(p.Pix[i:]))
	case 3:
		if p.Order == binary.BigEndian {
			return uint32(p.Pix[i])<<16 | uint32(p.Pix[i+1])<<8 | uint32(p.Pix[i+2])
		}
		return uint32(p.Pix[i]) | uint32(p.Pix[i+1])<<8 | uint32(p.Pix[i+2])<<16
	default:
		return p.Order.Uint32(p.Pix[i:])
	}
}

func (p *PackedImage) store(i int, v uint32) {
	switch p.Format.BytesPerPixel() {
	case 1:
		p.Pix[i] = byte(v)
	case 2:
		p.Order.PutUint16(p.Pix[i:], uint16(v))
	case 3:
		if p.Order == binary.BigEndian {
			p.Pix[i], p.Pix[i+1], p.Pix[i+2] = byte(v>>16), byte(v>>8), byte(v)
		} else {
			p.Pix[i], p.Pix[i+1], p.Pix[i+2] = byte(v), byte(v>>8), byte(v>>16)
		}
	default:
		p.Order.PutUint32(p.Pix[i:], v)
	}
}
