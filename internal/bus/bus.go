// Package bus provides the addressable-memory abstraction of the
// emulated machine. The Bus owns the flat 64 KiB memory image,
// resolves addresses to named regions, and routes reads and writes of
// memory mapped hardware registers to the component that registered
// them. It is unaware of the other components; they attach themselves
// through RegisterHardware.
package bus

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/pixelmoss/dotmatrix/internal/types"
	"github.com/pixelmoss/dotmatrix/pkg/log"
)

// AddressableSize is the size of the 16-bit address space.
const AddressableSize = 0x10000

// bootROMSize is the exact size of a DMG boot ROM image.
const bootROMSize = 0x100

// ErrOutOfRange is returned when a read or write would run past the
// end of the addressable space.
var ErrOutOfRange = errors.New("bus: address out of range")

// Address is a pair of read/write handlers for a single hardware
// register address. Either handler may be nil, in which case the
// access falls through to the raw memory image.
type Address struct {
	Read  func(address uint16) uint8
	Write func(address uint16, value uint8)
}

// Bus is the memory bus of the emulated machine. All memory traffic
// from the CPU, timer and pixel pipeline goes through it.
type Bus struct {
	// the flat memory image backing every region that no component
	// has claimed with a hardware register hook
	data [AddressableSize]byte

	// hardware register hooks, keyed by absolute address. Only the
	// I/O region and the interrupt enable register are ever hooked.
	hooks map[uint16]Address

	// 0x0000 - 0x00FF boot ROM overlay, unmapped for good once the
	// BDIS latch is written
	bootROM  []byte
	bootDone bool

	// Debug enables per-access tracing. Tracing is best-effort and
	// never changes emulated behaviour.
	Debug bool

	log log.Logger
}

// New returns a new Bus with an empty memory image.
func New(l log.Logger) *Bus {
	if l == nil {
		l = log.NewNullLogger()
	}
	b := &Bus{
		hooks: make(map[uint16]Address),
		log:   l,
	}

	// any write to BDIS unmaps the boot ROM overlay
	b.RegisterHardware(types.BDIS, func(_ uint16, _ uint8) {
		b.bootDone = true
	}, nil)

	return b
}

// RegisterHardware attaches read/write handlers for a hardware
// register address. Components call this once at construction time.
func (b *Bus) RegisterHardware(addr uint16, write func(address uint16, value uint8), read func(address uint16) uint8) {
	b.hooks[addr] = Address{Read: read, Write: write}
}

// LoadBootROM maps a 256-byte boot ROM image over 0x0000 - 0x00FF.
// The overlay stays mapped until the BDIS latch is written.
func (b *Bus) LoadBootROM(rom []byte) error {
	if len(rom) != bootROMSize {
		return fmt.Errorf("bus: invalid boot rom length: %d", len(rom))
	}
	sum := md5.Sum(rom)
	b.log.Infof("boot rom loaded, checksum %s", hex.EncodeToString(sum[:]))

	b.bootROM = rom
	b.bootDone = false
	return nil
}

// LoadROM copies a cartridge image into the cartridge regions. Images
// larger than the two ROM windows are truncated; bank switching is
// identified from the header but not performed.
func (b *Bus) LoadROM(rom []byte) {
	n := len(rom)
	if n > 0x8000 {
		n = 0x8000
	}
	copy(b.data[:n], rom[:n])
}

// ReadByte returns the byte at the given address, honouring the boot
// ROM overlay and any registered hardware register hook.
func (b *Bus) ReadByte(address uint16) uint8 {
	var value uint8
	switch {
	case b.bootROM != nil && !b.bootDone && address < bootROMSize:
		value = b.bootROM[address]
	default:
		if hook, ok := b.hooks[address]; ok && hook.Read != nil {
			value = hook.Read(address)
		} else {
			value = b.data[address]
		}
	}
	if b.Debug {
		b.log.Debugf("bus: read %04X -> %02X (%s)", address, value, b.Region(address).Name)
	}
	return value
}

// WriteByte writes the byte at the given address, routing through any
// registered hardware register hook.
func (b *Bus) WriteByte(address uint16, value uint8) {
	if b.Debug {
		b.log.Debugf("bus: write %04X <- %02X (%s)", address, value, b.Region(address).Name)
	}
	if hook, ok := b.hooks[address]; ok {
		if hook.Write != nil {
			hook.Write(address, value)
		}
		return
	}
	b.data[address] = value
}

// Read returns length bytes starting at the given address. It fails
// with ErrOutOfRange when the requested range runs past the end of
// the addressable space; it never panics.
func (b *Bus) Read(address uint16, length int) ([]byte, error) {
	if length < 0 || int(address)+length > AddressableSize {
		return nil, fmt.Errorf("%w: read %d bytes at %04X", ErrOutOfRange, length, address)
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = b.ReadByte(address + uint16(i))
	}
	return out, nil
}

// Write stores the given bytes starting at the given address. It
// fails with ErrOutOfRange when the range runs past the end of the
// addressable space; it never panics.
func (b *Bus) Write(address uint16, data []byte) error {
	if int(address)+len(data) > AddressableSize {
		return fmt.Errorf("%w: write %d bytes at %04X", ErrOutOfRange, len(data), address)
	}
	for i, v := range data {
		b.WriteByte(address+uint16(i), v)
	}
	return nil
}

// Raw returns the byte at the given address straight from the memory
// image, bypassing hooks, the overlay and tracing. Components use it
// to mirror their counters (LY, DIV) into the image without
// re-entering their own hooks.
func (b *Bus) Raw(address uint16) uint8 {
	return b.data[address]
}

// SetRaw stores a byte straight into the memory image, bypassing
// hooks, the overlay and tracing.
func (b *Bus) SetRaw(address uint16, value uint8) {
	b.data[address] = value
}
