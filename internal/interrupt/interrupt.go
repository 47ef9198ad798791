// Package interrupt provides the interrupt service of the emulated
// machine. Components request interrupts by setting bits of the IF
// register; the CPU services them through Vector when the master
// enable allows it.
package interrupt

import (
	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), requested
	// every time the pixel pipeline enters VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the timer interrupt flag (bit 2), requested when
	// the timer counter overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the joypad interrupt flag (bit 4).
	JoypadFlag = types.Bit4
)

// Service owns the interrupt flag and enable registers. When an
// interrupt is both requested and enabled, and the IME is set, the
// CPU jumps to its vector and the flag bit is cleared.
type Service struct {
	Flag   uint8 // interrupt flag (types.IF)
	Enable uint8 // interrupt enable (types.IE)

	// IME is the interrupt master enable. It is toggled by the DI,
	// EI and RETI instructions, not by any register.
	IME bool
}

// NewService returns a new Service with its registers attached to
// the bus.
func NewService(b *bus.Bus) *Service {
	s := &Service{}
	b.RegisterHardware(types.IF,
		func(_ uint16, v uint8) {
			s.Flag = v & 0x1F // only the first 5 bits are used
		}, func(_ uint16) uint8 {
			return s.Flag | 0xE0 // the upper 3 bits always read as set
		},
	)
	b.RegisterHardware(types.IE,
		func(_ uint16, v uint8) {
			s.Enable = v
		}, func(_ uint16) uint8 {
			return s.Enable
		},
	)
	return s
}

// HasInterrupts returns true if any interrupt is both requested and
// enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}

// Request requests the specified interrupt by setting the
// corresponding bit of the flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the vector of the highest-priority requested and
// enabled interrupt, clearing its flag bit, or 0 if none is pending.
func (s *Service) Vector() uint16 {
	if s.Enable&s.Flag == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag ^= flag
			return uint16(0x0040 + i*8)
		}
	}
	return 0
}
