package framebuffer

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/eink/mxcfb"
)

// A regular file stands in for the device: it can be mapped, but rejects
// every framebuffer ioctl.
func openTestDevice(t *testing.T, size int) *Device {
	t.Helper()
	name := filepath.Join(t.TempDir(), "fb0")
	require.NoError(t, os.WriteFile(name, make([]byte, size), 0o600))

	d, err := Open(name)
	require.NoError(t, err)
	return d
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeviceIoctlRejected(t *testing.T) {
	d := openTestDevice(t, 4096)
	defer d.Close()

	_, err := d.FixScreenInfo()
	assert.ErrorIs(t, err, syscall.ENOTTY)

	_, err = d.VarScreenInfo()
	assert.ErrorIs(t, err, syscall.ENOTTY)

	assert.ErrorIs(t, d.SendUpdate(&mxcfb.UpdateData{}), syscall.ENOTTY)
	assert.ErrorIs(t, d.WaitForUpdateComplete(&mxcfb.UpdateMarkerData{UpdateMarker: 1}), syscall.ENOTTY)
}

func TestDeviceMap(t *testing.T) {
	d := openTestDevice(t, 4096)
	defer d.Close()

	pix, err := d.Map(4096)
	require.NoError(t, err)
	assert.Len(t, pix, 4096)

	pix[0] = 0xaa
	require.NoError(t, d.Unmap(pix))
}

func TestDeviceClose(t *testing.T) {
	d := openTestDevice(t, 4096)
	require.NoError(t, d.Close())

	assert.Equal(t, ErrClosed, errors.Cause(d.Close()))
	_, err := d.Map(4096)
	assert.Equal(t, ErrClosed, errors.Cause(err))
	_, err = d.VarScreenInfo()
	assert.Equal(t, ErrClosed, errors.Cause(err))
}
