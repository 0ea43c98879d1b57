//go:build !linux

package framebuffer

import "github.com/BeatGlow/eink/mxcfb"

// Device is an open framebuffer device.
type Device struct{}

// Open always fails on systems without fbdev.
func Open(_ string) (*Device, error) {
	return nil, ErrNotSupported
}

func (*Device) String() string {
	return "framebuffer (not supported)"
}

func (*Device) FixScreenInfo() (FixScreenInfo, error) {
	return FixScreenInfo{}, ErrNotSupported
}

func (*Device) VarScreenInfo() (VarScreenInfo, error) {
	return VarScreenInfo{}, ErrNotSupported
}

func (*Device) Map(_ int) ([]byte, error) {
	return nil, ErrNotSupported
}

func (*Device) Unmap(_ []byte) error {
	return ErrNotSupported
}

func (*Device) SendUpdate(_ *mxcfb.UpdateData) error {
	return ErrNotSupported
}

func (*Device) WaitForUpdateComplete(_ *mxcfb.UpdateMarkerData) error {
	return ErrNotSupported
}

func (*Device) Close() error {
	return ErrNotSupported
}
