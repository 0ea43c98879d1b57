package framebuffer

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"

	"github.com/BeatGlow/eink/internal/ioctl"
	"github.com/BeatGlow/eink/mxcfb"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
)

// Device is an open framebuffer device.
type Device struct {
	f  *os.File
	fd uintptr
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (*Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}
	return &Device{
		f:  f,
		fd: f.Fd(),
	}, nil
}

func (d *Device) String() string {
	if d.f == nil {
		return "framebuffer (closed)"
	}
	return fmt.Sprintf("framebuffer %s", d.f.Name())
}

// FixScreenInfo queries the fixed screen information.
func (d *Device) FixScreenInfo() (info FixScreenInfo, err error) {
	err = d.ioctl(fbioGetFScreenInfo, unsafe.Pointer(&info))
	return
}

// VarScreenInfo queries the variable screen information.
func (d *Device) VarScreenInfo() (info VarScreenInfo, err error) {
	err = d.ioctl(fbioGetVScreenInfo, unsafe.Pointer(&info))
	return
}

// Map the first length bytes of the pixel buffer into memory, shared with the device.
func (d *Device) Map(length int) ([]byte, error) {
	if d.f == nil {
		return nil, ErrClosed
	}
	pix, err := unix.Mmap(int(d.fd), 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.SyscallError{
			Syscall: "mmap",
			Err:     err,
		}
	}
	return pix, nil
}

// Unmap a buffer returned by Map.
func (d *Device) Unmap(pix []byte) error {
	if err := unix.Munmap(pix); err != nil {
		return &os.SyscallError{
			Syscall: "munmap",
			Err:     err,
		}
	}
	return nil
}

// SendUpdate submits an update request to the EPDC driver.
func (d *Device) SendUpdate(data *mxcfb.UpdateData) error {
	return d.ioctl(mxcfb.SendUpdate, unsafe.Pointer(data))
}

// WaitForUpdateComplete blocks until the driver reports the marker in data
// as displayed.
func (d *Device) WaitForUpdateComplete(data *mxcfb.UpdateMarkerData) error {
	return d.ioctl(mxcfb.WaitForUpdateComplete, unsafe.Pointer(data))
}

// Close the framebuffer device
func (d *Device) Close() error {
	if d.f == nil {
		return ErrClosed
	}
	err := d.f.Close()
	d.f = nil
	return err
}

func (d *Device) ioctl(cmd ioctl.Command, arg unsafe.Pointer) error {
	if d.f == nil {
		return ErrClosed
	}
	return errors.Annotatef(ioctl.Do(d.fd, cmd, arg), "framebuffer: %s", cmd)
}
