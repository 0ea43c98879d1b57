package ioctl

import (
	"fmt"
	"reflect"
)

// Mode is the IOCTL direction.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
	ReadWrite = Read | Write
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = c.Mode()
		size = c.Size()
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", str, size, uintptr(cmd))
}

// Mode is the data direction encoded in the command.
func (c Command) Mode() Mode {
	return Mode(c >> 30 & 0x03)
}

// Size is the argument size encoded in the command.
func (c Command) Size() uint16 {
	return uint16(c >> 16 & 0x3fff)
}

// Encode an ioctl command.
func Encode(mode Mode, size uint16, cmd uintptr) Command {
	return Command(mode)<<30 | Command(size)<<16 | Command(cmd)
}

// Pointer encodes a command whose argument is a pointer to ref's element type.
// A typed nil pointer is fine, only the type is inspected.
func Pointer(mode Mode, ref interface{}, cmd uintptr) Command {
	size := uint16(reflect.TypeOf(ref).Elem().Size())
	return Encode(mode, size, cmd)
}

// Type combines the ioctl type (magic) character and the command number.
func Type(magic byte, nr uint8) uintptr {
	return uintptr(magic)<<8 | uintptr(nr)
}
