package framebuffer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestScreenInfoSizes(t *testing.T) {
	assert.Equal(t, uintptr(160), unsafe.Sizeof(VarScreenInfo{}))
	if unsafe.Sizeof(uintptr(0)) == 8 {
		assert.Equal(t, uintptr(80), unsafe.Sizeof(FixScreenInfo{}))
	} else {
		assert.Equal(t, uintptr(68), unsafe.Sizeof(FixScreenInfo{}))
	}
}

func TestFixScreenInfoName(t *testing.T) {
	var info FixScreenInfo
	copy(info.ID[:], "mxc_epdc_fb")
	assert.Equal(t, "mxc_epdc_fb", info.Name())

	copy(info.ID[:], "0123456789abcdef")
	assert.Equal(t, "0123456789abcdef", info.Name())
}
