package pixel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelMax(t *testing.T) {
	tests := []struct {
		Length uint32
		Want   uint32
	}{
		{0, 0},
		{1, 1},
		{5, 31},
		{6, 63},
		{8, 255},
		{16, 0xffff},
		{32, 0xffffffff},
	}
	for _, test := range tests {
		assert.Equal(t, test.Want, Channel{Offset: 3, Length: test.Length}.Max(), "length %d", test.Length)
	}
}

func TestChannelRoundTrip(t *testing.T) {
	for _, c := range []Channel{
		{Offset: 11, Length: 5},
		{Offset: 5, Length: 6},
		{Offset: 0, Length: 8},
		{Offset: 4, Length: 4},
		{Offset: 0, Length: 16},
	} {
		for v := uint32(0); v <= c.Max(); v++ {
			p := v << c.Offset
			assert.Equal(t, p, c.Pack(c.Unpack(p)), "channel %+v value %d", c, v)
		}
		assert.Equal(t, uint32(0xffff), c.Unpack(c.Mask()))
		assert.Zero(t, c.Unpack(0))
	}
}

func TestRGB565(t *testing.T) {
	tests := []struct {
		Input  color.RGBA
		Expect uint32
	}{
		{color.RGBA{0, 0, 0, 0}, 0},
		{color.RGBA{0, 0, 0, 0xff}, 0},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 0xffff},
		{color.RGBA{0xff, 0x00, 0x00, 0xff}, 0xf800},
		{color.RGBA{0x00, 0xff, 0x00, 0xff}, 0x07e0},
		{color.RGBA{0x00, 0x00, 0xff, 0xff}, 0x001f},
		{color.RGBA{0x0c, 0x0c, 0x0c, 0xff}, 0x0861},
	}
	for _, test := range tests {
		assert.Equal(t, test.Expect, RGB565.Pack(test.Input), "%v", test.Input)
	}
	assert.Equal(t, color.RGBA64{R: 0xffff, A: 0xffff}, RGB565.Unpack(0xf800))
}

func TestGray8(t *testing.T) {
	assert.True(t, Gray8.Gray())
	assert.False(t, RGB565.Gray())

	assert.Equal(t, uint32(0xff), Gray8.Pack(color.White))
	assert.Equal(t, uint32(0x00), Gray8.Pack(color.Black))
	assert.Equal(t, uint32(0x80), Gray8.Pack(color.Gray{Y: 0x80}))
	assert.Equal(t, color.RGBA64{R: 0x8080, G: 0x8080, B: 0x8080, A: 0xffff}, Gray8.Unpack(0x80))
}

func TestFormatModel(t *testing.T) {
	m := RGB565.Model()
	c := m.Convert(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	assert.Equal(t, c, m.Convert(c))
	assert.Equal(t, 2, RGB565.BytesPerPixel())
	assert.Equal(t, 4, XRGB8888.BytesPerPixel())
	assert.Equal(t, 1, Gray8.BytesPerPixel())
}
