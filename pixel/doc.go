// Package pixel describes packed framebuffer pixel formats and implements an
// image over a raw, possibly padded, framebuffer memory region.
//
// Images in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
