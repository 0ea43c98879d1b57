// Package eink drives e-ink displays behind a Linux framebuffer with an i.MX
// EPDC style update interface, as found in e-book readers and paper tablets.
//
// Writing to the framebuffer memory does not change what the panel shows. The
// written region has to be pushed to the panel with an update, choosing a
// waveform that trades speed for image quality:
//
//	screen, err := eink.Open("/dev/fb0", nil)
//	if err != nil {
//		return err
//	}
//	defer screen.Close()
//
//	// ... write pixels to screen.Data() ...
//	_, err = screen.UpdatePartial(image.Rect(10, 20, 110, 70), mxcfb.WaveformDU, eink.DefaultPartialWait)
package eink

import (
	"os"

	"github.com/juju/errors"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/eink/mxcfb"
)

var debug bool

func init() {
	debug = os.Getenv("EINK_DEBUG") != ""
}

// Errors
var (
	ErrClosed   = errors.New("eink: screen is closed")
	ErrGeometry = errors.New("eink: invalid screen geometry")
)

// Default wait behaviour of the update calls.
const (
	DefaultPartialWait = false
	DefaultFullWait    = true
)

// Config is the screen configuration.
type Config struct {
	// Waveform used by Refresh and Draw.
	Waveform mxcfb.WaveformMode

	// Temperature passed to the driver with every update, zero selects
	// mxcfb.TempNormal.
	Temperature int32

	// Frontlight pin, optional.
	Frontlight gpio.PinOut
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Waveform:    mxcfb.WaveformGC16,
	Temperature: mxcfb.TempNormal,
}

// Marker identifies a submitted update, so its completion can be waited for.
//
// Markers cycle through FirstMarker to LastMarker, zero is never used. The
// driver can only tell apart updates that are less than LastMarker
// submissions apart.
type Marker uint32

// Marker range.
const (
	FirstMarker Marker = 1
	LastMarker  Marker = 255
)

// Next returns the marker that follows m.
func (m Marker) Next() Marker {
	if m >= LastMarker || m < FirstMarker {
		return FirstMarker
	}
	return m + 1
}

// Valid reports if m is within the marker range.
func (m Marker) Valid() bool {
	return m >= FirstMarker && m <= LastMarker
}
