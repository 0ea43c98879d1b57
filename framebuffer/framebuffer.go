// Package framebuffer provides access to the operating system's native framebuffer
//
// This requires framebuffer device support in the operating system. The device
// is opened with the [Open] call, which gives access to the fixed and variable
// screen information, the memory map of the pixel buffer and the update
// ioctls of the i.MX EPDC driver found in e-ink readers.
//
// On systems without framebuffer support, [Open] returns [ErrNotSupported].
package framebuffer

import (
	"github.com/juju/errors"
)

// Errors
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrClosed       = errors.New("framebuffer: device is closed")
)

// FixScreenInfo is struct fb_fix_screeninfo from <linux/fb.h>, the fixed
// properties of a screen.
type FixScreenInfo struct {
	ID           [16]byte  // Identification string eg "mxc_epdc_fb"
	SmemStart    uintptr   // Start of frame buffer mem
	SmemLen      uint32    // Length of frame buffer mem
	Type         uint32    // FB_TYPE_
	TypeAux      uint32    // Interleave for interleaved Planes
	Visual       uint32    // FB_VISUAL_
	Xpanstep     uint16    // Zero if no hardware panning
	Ypanstep     uint16    // Zero if no hardware panning
	Ywrapstep    uint16    // Zero if no hardware ywrap
	LineLength   uint32    // Length of a line in bytes
	MmioStart    uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen      uint32    // Length of Memory Mapped I/O
	Accel        uint32    // Type of acceleration available
	Capabilities uint16    // FB_CAP_
	Reserved     [2]uint16 // Reserved for future compatibility
}

// Name returns the identification string.
func (info *FixScreenInfo) Name() string {
	for i, b := range info.ID {
		if b == 0 {
			return string(info.ID[:i])
		}
	}
	return string(info.ID[:])
}

// BitField describes a color channel, struct fb_bitfield.
type BitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// VarScreenInfo is struct fb_var_screeninfo from <linux/fb.h>, it contains
// device independent changeable information about a frame buffer device and a
// specific video mode.
type VarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha BitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
