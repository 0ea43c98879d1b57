package eink

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"github.com/juju/errors"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/eink/framebuffer"
	"github.com/BeatGlow/eink/mxcfb"
	"github.com/BeatGlow/eink/pixel"
)

// Device is the framebuffer device a Screen talks to. It is implemented by
// *framebuffer.Device.
type Device interface {
	// FixScreenInfo queries the fixed screen information.
	FixScreenInfo() (framebuffer.FixScreenInfo, error)

	// VarScreenInfo queries the variable screen information.
	VarScreenInfo() (framebuffer.VarScreenInfo, error)

	// Map the first length bytes of the pixel buffer.
	Map(length int) ([]byte, error)

	// Unmap a buffer returned by Map.
	Unmap([]byte) error

	// SendUpdate submits an update request.
	SendUpdate(*mxcfb.UpdateData) error

	// WaitForUpdateComplete blocks until the marker has been displayed.
	WaitForUpdateComplete(*mxcfb.UpdateMarkerData) error

	// Close the device.
	Close() error
}

// Geometry is the screen layout reported by the driver.
type Geometry struct {
	// Visible resolution.
	Xres, Yres uint32

	// Resolution of the memory backing the screen, may be padded.
	XresMemory, YresMemory uint32

	BitsPerPixel uint32

	// LineLength is the driver reported length of a line in bytes.
	LineLength uint32

	Red, Green, Blue pixel.Channel
	Grayscale        bool
}

func newGeometry(fix *framebuffer.FixScreenInfo, info *framebuffer.VarScreenInfo) (g Geometry, err error) {
	g = Geometry{
		Xres:         info.Xres,
		Yres:         info.Yres,
		XresMemory:   info.XresVirtual,
		YresMemory:   info.YresVirtual,
		BitsPerPixel: info.BitsPerPixel,
		LineLength:   fix.LineLength,
		Red:          pixel.Channel{Offset: info.Red.Offset, Length: info.Red.Length},
		Green:        pixel.Channel{Offset: info.Green.Offset, Length: info.Green.Length},
		Blue:         pixel.Channel{Offset: info.Blue.Offset, Length: info.Blue.Length},
		Grayscale:    info.Grayscale == 1,
	}
	if g.Xres == 0 || g.Yres == 0 || g.BitsPerPixel == 0 {
		return g, errors.Annotatef(ErrGeometry, "%dx%d at %d bits per pixel", g.Xres, g.Yres, g.BitsPerPixel)
	}
	// Some drivers leave the virtual resolution unset.
	if g.XresMemory < g.Xres {
		g.XresMemory = g.Xres
	}
	if g.YresMemory < g.Yres {
		g.YresMemory = g.Yres
	}
	return g, nil
}

// Bounds of the visible area.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(g.Xres), int(g.Yres))
}

// Stride is the number of bytes between vertically adjacent pixels.
func (g Geometry) Stride() int {
	return int(g.XresMemory) * g.Format().BytesPerPixel()
}

// Size of the memory backing the screen in bytes.
func (g Geometry) Size() int {
	return int(g.YresMemory) * int(g.XresMemory) * int(g.BitsPerPixel) / 8
}

// Format is the pixel encoding.
func (g Geometry) Format() pixel.Format {
	return pixel.Format{
		BitsPerPixel: g.BitsPerPixel,
		Red:          g.Red,
		Green:        g.Green,
		Blue:         g.Blue,
		Grayscale:    g.Grayscale,
	}
}

// Screen is an e-ink display with a memory mapped framebuffer.
//
// Update calls may be issued from multiple goroutines; marker assignment and
// submission are serialized, waiting is not. Writes to the pixel buffer are not
// synchronized at all. Close should not be called while other calls are in
// flight; a Wait racing Close returns an error.
type Screen struct {
	mu       sync.Mutex
	dev      Device
	name     string
	pix      []byte
	geometry Geometry
	config   Config
	marker   Marker // next marker to assign
	image    *pixel.PackedImage
	imageErr error
	closed   bool
}

// Open a framebuffer device by name, typically /dev/fb0, and map its memory.
func Open(name string, config *Config) (*Screen, error) {
	dev, err := framebuffer.Open(name)
	if err != nil {
		return nil, errors.Annotatef(err, "eink: open %s", name)
	}
	s, err := New(dev, config)
	if err != nil {
		return nil, err
	}
	s.name = name
	return s, nil
}

// New sets up a screen on an open device and maps the device memory. The
// screen owns the device from here on; if New fails, the device is closed.
func New(dev Device, config *Config) (s *Screen, err error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	defer func() {
		if err != nil {
			_ = dev.Close()
		}
	}()

	fix, err := dev.FixScreenInfo()
	if err != nil {
		return nil, errors.Annotate(err, "eink: get fixed screen info")
	}
	info, err := dev.VarScreenInfo()
	if err != nil {
		return nil, errors.Annotate(err, "eink: get variable screen info")
	}
	geometry, err := newGeometry(&fix, &info)
	if err != nil {
		return nil, err
	}

	size := int(fix.SmemLen)
	if size == 0 {
		size = geometry.Size()
	}
	pix, err := dev.Map(size)
	if err != nil {
		return nil, errors.Annotatef(err, "eink: map %d bytes", size)
	}

	s = &Screen{
		dev:      dev,
		pix:      pix,
		geometry: geometry,
		config:   *config,
		marker:   FirstMarker,
	}
	if stringer, ok := dev.(fmt.Stringer); ok {
		s.name = stringer.String()
	}
	if s.config.Temperature == 0 {
		s.config.Temperature = mxcfb.TempNormal
	}
	s.image, s.imageErr = pixel.NewPackedImage(pix, geometry.Bounds(), geometry.Stride(), geometry.Format())

	if debug {
		log.Printf("eink: %s %dx%d (memory %dx%d) %d bpp, mapped %d bytes", s.name,
			geometry.Xres, geometry.Yres, geometry.XresMemory, geometry.YresMemory, geometry.BitsPerPixel, len(pix))
	}
	return s, nil
}

// Close unmaps the framebuffer memory and closes the device. The slice
// returned by Data must not be used after Close.
func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true

	err := s.dev.Unmap(s.pix)
	s.pix, s.image = nil, nil
	if closeErr := s.dev.Close(); err == nil {
		err = closeErr
	}
	return errors.Annotate(err, "eink: close")
}

func (s *Screen) String() string {
	if s.name == "" {
		return fmt.Sprintf("e-ink %dx%d", s.geometry.Xres, s.geometry.Yres)
	}
	return fmt.Sprintf("e-ink %dx%d on %s", s.geometry.Xres, s.geometry.Yres, s.name)
}

// Data is the memory mapped pixel buffer.
//
// Pixels are stored in row-major order. Each row holds XresMemory pixels,
// which may be more than the Xres visible ones, and there are YresMemory
// rows. A pixel is a little-endian integer of BitsPerPixel bits, split in red,
// green and blue channels as given by Red, Green and Blue; bits not covered by
// a channel are unused.
func (s *Screen) Data() []byte {
	return s.pix
}

// Image is a view of the visible part of the pixel buffer.
func (s *Screen) Image() (*pixel.PackedImage, error) {
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	if s.image == nil {
		return nil, ErrClosed
	}
	return s.image, nil
}

// Geometry returns the screen layout.
func (s *Screen) Geometry() Geometry { return s.geometry }

// Format returns the pixel encoding.
func (s *Screen) Format() pixel.Format { return s.geometry.Format() }

// Xres is the visible width in pixels.
func (s *Screen) Xres() uint32 { return s.geometry.Xres }

// XresMemory is the width of a row in memory, in pixels.
func (s *Screen) XresMemory() uint32 { return s.geometry.XresMemory }

// Yres is the visible height in pixels.
func (s *Screen) Yres() uint32 { return s.geometry.Yres }

// YresMemory is the number of rows in memory.
func (s *Screen) YresMemory() uint32 { return s.geometry.YresMemory }

// BitsPerPixel is the size of a pixel in memory.
func (s *Screen) BitsPerPixel() uint32 { return s.geometry.BitsPerPixel }

// Red is the position of the red channel within a pixel.
func (s *Screen) Red() pixel.Channel { return s.geometry.Red }

// Green is the position of the green channel within a pixel.
func (s *Screen) Green() pixel.Channel { return s.geometry.Green }

// Blue is the position of the blue channel within a pixel.
func (s *Screen) Blue() pixel.Channel { return s.geometry.Blue }

// UpdatePartial pushes the region r of the pixel buffer to the panel. If wait
// is set, UpdatePartial blocks until the driver reports the update as done.
//
// The region is passed to the driver as is, it is up to the caller to keep it
// inside the screen.
func (s *Screen) UpdatePartial(r image.Rectangle, mode mxcfb.WaveformMode, wait bool) (Marker, error) {
	r = r.Canon()
	return s.send(&mxcfb.UpdateData{
		UpdateRegion: mxcfb.Rect{
			Top:    uint32(r.Min.Y),
			Left:   uint32(r.Min.X),
			Width:  uint32(r.Dx()),
			Height: uint32(r.Dy()),
		},
		WaveformMode: mode,
		UpdateMode:   mxcfb.UpdatePartial,
	}, wait)
}

// UpdateFull redraws the whole visible screen. If wait is set, UpdateFull
// blocks until the driver reports the update as done.
func (s *Screen) UpdateFull(mode mxcfb.WaveformMode, wait bool) (Marker, error) {
	return s.send(&mxcfb.UpdateData{
		UpdateRegion: mxcfb.Rect{
			Width:  s.geometry.Xres,
			Height: s.geometry.Yres,
		},
		WaveformMode: mode,
		UpdateMode:   mxcfb.UpdateFull,
	}, wait)
}

// Refresh redraws the whole screen with the configured waveform and waits
// for it to complete.
func (s *Screen) Refresh() error {
	_, err := s.UpdateFull(s.config.Waveform, DefaultFullWait)
	return err
}

func (s *Screen) send(update *mxcfb.UpdateData, wait bool) (Marker, error) {
	update.Temp = s.config.Temperature

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}
	marker := s.marker
	s.marker = marker.Next()
	update.UpdateMarker = uint32(marker)
	err := s.dev.SendUpdate(update)
	s.mu.Unlock()

	if err != nil {
		return marker, errors.Annotatef(err, "eink: send %s update marker=%d", update.UpdateMode, marker)
	}
	if debug {
		r := update.UpdateRegion
		log.Printf("eink: sent %s update (%d,%d)+%dx%d waveform=%s marker=%d wait=%t",
			update.UpdateMode, r.Left, r.Top, r.Width, r.Height, update.WaveformMode, marker, wait)
	}
	if wait {
		return marker, s.Wait(marker)
	}
	return marker, nil
}

// Wait blocks until the driver reports the update with the given marker as
// done. There is no timeout.
//
// Wait returns ErrClosed on a closed screen. The wait itself runs without the
// screen lock held, so a Close racing an in-flight Wait closes the device
// under it and Wait returns the error the driver reports for that.
func (s *Screen) Wait(marker Marker) error {
	if !marker.Valid() {
		return errors.NotValidf("marker %d", marker)
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	data := mxcfb.UpdateMarkerData{UpdateMarker: uint32(marker)}
	if err := s.dev.WaitForUpdateComplete(&data); err != nil {
		return errors.Annotatef(err, "eink: wait for update marker=%d", marker)
	}
	if debug {
		log.Printf("eink: update marker=%d complete", marker)
	}
	return nil
}

// Show toggles the frontlight, if one is configured.
func (s *Screen) Show(on bool) error {
	if s.config.Frontlight == nil || s.config.Frontlight == gpio.INVALID {
		return nil
	}
	return s.config.Frontlight.Out(gpio.Level(on))
}

// Halt switches the frontlight off. The panel keeps showing its last image.
func (s *Screen) Halt() error {
	return s.Show(false)
}

// Bounds is the visible screen area.
func (s *Screen) Bounds() image.Rectangle {
	return s.geometry.Bounds()
}

// ColorModel used by the screen.
func (s *Screen) ColorModel() color.Model {
	if s.image != nil {
		return s.image.ColorModel()
	}
	return s.geometry.Format().Model()
}

// Draw copies src to the region r of the pixel buffer and starts a partial
// update of that region with the configured waveform, without waiting for it.
func (s *Screen) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	dst, err := s.Image()
	if err != nil {
		return err
	}

	clipped := r.Intersect(dst.Bounds())
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))

	draw.Draw(dst, clipped, src, sp, draw.Src)
	_, err = s.UpdatePartial(clipped, s.config.Waveform, DefaultPartialWait)
	return err
}

var _ display.Drawer = (*Screen)(nil)
