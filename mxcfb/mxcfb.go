// Package mxcfb describes the update interface of the i.MX electrophoretic
// display controller (EPDC) framebuffer driver.
//
// The types in this package mirror the kernel structures from <linux/mxcfb.h>
// byte for byte, so they can be handed to the driver with an ioctl call.
package mxcfb

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	"github.com/BeatGlow/eink/internal/ioctl"
)

// Commands accepted by the EPDC framebuffer device.
var (
	// SendUpdate submits an UpdateData to the driver, MXCFB_SEND_UPDATE.
	SendUpdate = ioctl.Pointer(ioctl.Write, (*UpdateData)(nil), ioctl.Type('F', 0x2e))

	// WaitForUpdateComplete blocks until the marker in an UpdateMarkerData
	// has been displayed, MXCFB_WAIT_FOR_UPDATE_COMPLETE.
	WaitForUpdateComplete = ioctl.Pointer(ioctl.ReadWrite, (*UpdateMarkerData)(nil), ioctl.Type('F', 0x2f))
)

// WaveformMode selects the rendering algorithm the controller uses to drive
// the panel. Faster modes leave more ghosting behind.
type WaveformMode uint32

// Waveform modes.
const (
	WaveformInit     WaveformMode = 0x0 // Full screen clear to white
	WaveformDU       WaveformMode = 0x1 // Fast, monochrome only
	WaveformGC16     WaveformMode = 0x2 // High fidelity, 16 gray levels
	WaveformGC16Fast WaveformMode = 0x3 // GC16 with a shorter waveform
	WaveformA2       WaveformMode = 0x4 // Fastest, monochrome animation
	WaveformGL16     WaveformMode = 0x5 // GC16 without flashing white areas
	WaveformGL16Fast WaveformMode = 0x6
	WaveformDU4      WaveformMode = 0x7 // Fast, 4 gray levels
	WaveformREAGL    WaveformMode = 0x8 // Ghost compensation
	WaveformREAGLD   WaveformMode = 0x9 // Ghost compensation with dithering
	WaveformGL4      WaveformMode = 0xa
	WaveformGL16Inv  WaveformMode = 0xb
)

var waveformNames = map[WaveformMode]string{
	WaveformInit:     "init",
	WaveformDU:       "du",
	WaveformGC16:     "gc16",
	WaveformGC16Fast: "gc16-fast",
	WaveformA2:       "a2",
	WaveformGL16:     "gl16",
	WaveformGL16Fast: "gl16-fast",
	WaveformDU4:      "du4",
	WaveformREAGL:    "reagl",
	WaveformREAGLD:   "reagld",
	WaveformGL4:      "gl4",
	WaveformGL16Inv:  "gl16-inv",
}

func (m WaveformMode) String() string {
	if name, ok := waveformNames[m]; ok {
		return name
	}
	return fmt.Sprintf("waveform(%#x)", uint32(m))
}

// ParseWaveformMode returns the waveform mode with the given name. Names are
// case insensitive and underscores may be used instead of dashes.
func ParseWaveformMode(name string) (WaveformMode, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for mode, modeName := range waveformNames {
		if modeName == name {
			return mode, nil
		}
	}
	return 0, errors.NotValidf("waveform mode %q", name)
}

// UpdateMode selects between a partial and a full refresh.
type UpdateMode uint32

// Update modes.
const (
	// UpdatePartial only changes pixels that differ from the current image.
	UpdatePartial UpdateMode = 0x0

	// UpdateFull redraws every pixel in the region, flashing the panel.
	UpdateFull UpdateMode = 0x1
)

func (m UpdateMode) String() string {
	switch m {
	case UpdatePartial:
		return "partial"
	case UpdateFull:
		return "full"
	default:
		return fmt.Sprintf("mode(%#x)", uint32(m))
	}
}

// Temperatures understood by the driver in UpdateData.Temp.
const (
	// TempNormal is the fixed temperature used for regular drawing.
	TempNormal int32 = 0x0018

	// TempAmbient lets the driver read the panel temperature sensor.
	TempAmbient int32 = 0x1000
)

// Update flags.
const (
	FlagEnableInversion uint32 = 0x0001
	FlagForceMonochrome uint32 = 0x0002
	FlagUseAltBuffer    uint32 = 0x0100
	FlagTestCollision   uint32 = 0x0200
	FlagGroupUpdate     uint32 = 0x0400
	FlagUseDitheringY1  uint32 = 0x2000
	FlagUseDitheringY4  uint32 = 0x4000
)

// Rect is struct mxcfb_rect.
type Rect struct {
	Top    uint32
	Left   uint32
	Width  uint32
	Height uint32
}

// AltBufferData is struct mxcfb_alt_buffer_data.
type AltBufferData struct {
	PhysAddr        uint32
	Width           uint32
	Height          uint32
	AltUpdateRegion Rect
}

// UpdateData is struct mxcfb_update_data.
type UpdateData struct {
	UpdateRegion  Rect
	WaveformMode  WaveformMode
	UpdateMode    UpdateMode
	UpdateMarker  uint32
	Temp          int32
	Flags         uint32
	DitherMode    int32
	QuantBit      int32
	AltBufferData AltBufferData
}

// UpdateMarkerData is struct mxcfb_update_marker_data.
type UpdateMarkerData struct {
	UpdateMarker  uint32
	CollisionTest uint32
}
