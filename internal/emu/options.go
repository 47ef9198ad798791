package emu

import (
	"github.com/pixelmoss/dotmatrix/pkg/display"
	"github.com/pixelmoss/dotmatrix/pkg/log"
)

// Opt configures a Machine before its components are built.
type Opt func(*Machine)

// WithBootROM maps the given 256-byte boot ROM image over the start
// of the address space until the boot latch is written.
func WithBootROM(rom []byte) Opt {
	return func(m *Machine) {
		m.bootROM = rom
	}
}

// WithLogger routes all core logging through the given logger.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.log = l
	}
}

// WithDebug enables bus tracing and instruction disassembly.
func WithDebug() Opt {
	return func(m *Machine) {
		m.debug = true
	}
}

// WithBreakpoint arms the single breakpoint address.
func WithBreakpoint(addr uint16) Opt {
	return func(m *Machine) {
		a := addr
		m.breakpoint = &a
	}
}

// WithDisplay attaches a presentation driver that receives each
// completed frame.
func WithDisplay(d display.Driver) Opt {
	return func(m *Machine) {
		m.driver = d
	}
}
