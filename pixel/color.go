package pixel

import "image/color"

// Channel describes where a color component is stored inside a packed pixel.
type Channel struct {
	Offset uint32 // Beginning of bitfield
	Length uint32 // Length of bitfield
}

// Max is the largest value the channel can hold, 2^Length - 1.
func (c Channel) Max() uint32 {
	switch {
	case c.Length == 0:
		return 0
	case c.Length >= 32:
		return 0xffffffff
	default:
		return 1<<c.Length - 1
	}
}

// Mask selects the channel bits of a packed pixel.
func (c Channel) Mask() uint32 {
	return c.Max() << c.Offset
}

// Pack scales a 16-bit color component to the channel length and moves it to
// the channel offset.
func (c Channel) Pack(v uint32) uint32 {
	if c.Length == 0 {
		return 0
	}
	v &= 0xffff
	if c.Length <= 16 {
		v >>= 16 - c.Length
	} else {
		v = uint32(uint64(v) * uint64(c.Max()) / 0xffff)
	}
	return v << c.Offset
}

// Unpack extracts the channel from a packed pixel and scales it to 16 bits.
func (c Channel) Unpack(p uint32) uint32 {
	m := c.Max()
	if m == 0 {
		return 0
	}
	v := (p >> c.Offset) & m
	return uint32(uint64(v) * 0xffff / uint64(m))
}

// Format is the pixel encoding of a framebuffer.
type Format struct {
	BitsPerPixel uint32
	Red          Channel
	Green        Channel
	Blue         Channel

	// Grayscale is set when the framebuffer stores a single luminance value.
	Grayscale bool
}

// Common formats.
var (
	RGB565 = Format{
		BitsPerPixel: 16,
		Red:          Channel{Offset: 11, Length: 5},
		Green:        Channel{Offset: 5, Length: 6},
		Blue:         Channel{Offset: 0, Length: 5},
	}
	Gray8 = Format{
		BitsPerPixel: 8,
		Red:          Channel{Offset: 0, Length: 8},
		Green:        Channel{Offset: 0, Length: 8},
		Blue:         Channel{Offset: 0, Length: 8},
		Grayscale:    true,
	}
	XRGB8888 = Format{
		BitsPerPixel: 32,
		Red:          Channel{Offset: 16, Length: 8},
		Green:        Channel{Offset: 8, Length: 8},
		Blue:         Channel{Offset: 0, Length: 8},
	}
)

// BytesPerPixel is the number of bytes a pixel occupies, rounded up.
func (f Format) BytesPerPixel() int {
	return int((f.BitsPerPixel + 7) / 8)
}

// Gray reports if all channels share the same bits.
func (f Format) Gray() bool {
	return f.Grayscale || (f.Red == f.Green && f.Green == f.Blue)
}

// Pack encodes a color. Alpha is ignored.
func (f Format) Pack(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	if f.Gray() {
		// Same coefficients as color.GrayModel.
		y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
		return f.Red.Pack(y)
	}
	return f.Red.Pack(r) | f.Green.Pack(g) | f.Blue.Pack(b)
}

// Unpack decodes a packed pixel to an opaque color.
func (f Format) Unpack(v uint32) color.RGBA64 {
	if f.Gray() {
		y := uint16(f.Red.Unpack(v))
		return color.RGBA64{R: y, G: y, B: y, A: 0xffff}
	}
	return color.RGBA64{
		R: uint16(f.Red.Unpack(v)),
		G: uint16(f.Green.Unpack(v)),
		B: uint16(f.Blue.Unpack(v)),
		A: 0xffff,
	}
}

// Model returns a color model that quantizes colors to the format.
func (f Format) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return f.Unpack(f.Pack(c))
	})
}
