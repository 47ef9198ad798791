package bus

import (
	"errors"
	"fmt"
)

// ioBase is the start of the I/O register region.
const ioBase = 0xFF00

// IORegister is a named sub-range of the I/O register region,
// described as an offset/size pair within the 0xFF00 base.
type IORegister struct {
	Name   string
	Offset uint16
	Size   uint16
}

// ioRegisters names the sub-ranges of the I/O region.
var ioRegisters = []IORegister{
	{"JOYP", 0x00, 1},     // joypad
	{"SERIAL", 0x01, 2},   // serial transfer data and control
	{"TIMER", 0x04, 4},    // divider and timer block
	{"SOUND", 0x10, 0x17}, // sound channels
	{"WAVE", 0x30, 0x10},  // wave pattern RAM
	{"LCD", 0x40, 0x0C},   // LCD control block
	{"VBK", 0x4F, 1},      // VRAM bank select
	{"BOOT", 0x50, 1},     // boot ROM disable latch
	{"HDMA", 0x51, 5},     // VRAM DMA
	{"PALETTES", 0x68, 2}, // colour palette registers
	{"SVBK", 0x70, 1},     // WRAM bank select
}

// LookupIO translates an I/O register name to its offset/size pair
// within the I/O region. The second return value reports whether the
// name is known.
func LookupIO(name string) (IORegister, bool) {
	for _, r := range ioRegisters {
		if r.Name == name {
			return r, true
		}
	}
	return IORegister{}, false
}

// ErrUnknownIO is returned for I/O register names absent from the
// table.
var ErrUnknownIO = errors.New("bus: unknown I/O register")

// ReadIO reads a named I/O register block through the bounded read
// primitive.
func (b *Bus) ReadIO(name string) ([]byte, error) {
	r, ok := LookupIO(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIO, name)
	}
	return b.Read(ioBase+r.Offset, int(r.Size))
}

// WriteIO writes a named I/O register block through the bounded write
// primitive. The data must not exceed the register's size.
func (b *Bus) WriteIO(name string, data []byte) error {
	r, ok := LookupIO(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIO, name)
	}
	if len(data) > int(r.Size) {
		return fmt.Errorf("%w: %s is %d bytes, got %d", ErrOutOfRange, name, r.Size, len(data))
	}
	return b.Write(ioBase+r.Offset, data)
}
