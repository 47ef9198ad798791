// Package emu assembles the emulated machine: it constructs the bus,
// cartridge, interrupt service, timer, pixel pipeline and processor
// exactly once, wires them together by reference, and owns the frame
// loop that drives them.
package emu

import (
	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/cartridge"
	"github.com/pixelmoss/dotmatrix/internal/cpu"
	"github.com/pixelmoss/dotmatrix/internal/interrupt"
	"github.com/pixelmoss/dotmatrix/internal/ppu"
	"github.com/pixelmoss/dotmatrix/internal/timer"
	"github.com/pixelmoss/dotmatrix/pkg/display"
	"github.com/pixelmoss/dotmatrix/pkg/log"
)

// Machine is one emulated machine instance. All components are
// mutated by the single goroutine calling Frame; an attached display
// driver only ever receives completed frame buffers.
type Machine struct {
	Bus   *bus.Bus
	CPU   *cpu.CPU
	PPU   *ppu.PPU
	Timer *timer.Controller
	IRQ   *interrupt.Service
	Cart  *cartridge.Cartridge

	log    log.Logger
	driver display.Driver

	// staged by options before the components are built
	bootROM    []byte
	debug      bool
	breakpoint *uint16
}

// New parses the cartridge image, builds the machine and applies the
// given options.
func New(rom []byte, opts ...Opt) (*Machine, error) {
	m := &Machine{log: log.NewNullLogger()}
	for _, opt := range opts {
		opt(m)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	m.Cart = cart

	m.Bus = bus.New(m.log)
	m.Bus.Debug = m.debug
	m.IRQ = interrupt.NewService(m.Bus)
	m.Timer = timer.NewController(m.Bus, m.IRQ)
	m.PPU = ppu.New(m.Bus, m.IRQ)
	m.CPU = cpu.New(m.Bus, m.IRQ, m.log)
	m.CPU.Debug = m.debug

	m.Bus.LoadROM(cart.ROM())

	if !cart.VerifyHeaderChecksum() {
		m.log.Errorf("emu: header checksum mismatch for %q", cart.Title())
	}
	hdr := cart.Header()
	m.log.Infof("emu: loaded %s", hdr.String())

	if m.bootROM != nil {
		if err := m.Bus.LoadBootROM(m.bootROM); err != nil {
			return nil, err
		}
	} else {
		// without a boot image, start from the post-boot state
		m.CPU.PC = 0x0100
		m.CPU.SP = 0xFFFE
	}

	if m.breakpoint != nil {
		m.CPU.SetBreakpoint(*m.breakpoint)
	}

	return m, nil
}

// Frame drives the machine until the pixel pipeline completes one
// frame, forwarding elapsed cycles to the timer and pipeline after
// every instruction. It returns the completed frame buffer.
func (m *Machine) Frame() [ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	for {
		cycles := m.CPU.Tick()

		// the timer advances once per elapsed bus cycle
		for i := 0; i < int(cycles)*4; i++ {
			m.Timer.Tick()
		}
		m.PPU.Tick(cycles)

		if m.CPU.DebugBreakpoint {
			// cooperative pause: the loop stops at the frame
			// granularity and a front-end inspects the snapshot
			break
		}
		if m.PPU.FrameDone() {
			break
		}
	}

	if m.driver != nil {
		m.driver.Frame(m.PPU.Frame)
	}
	return m.PPU.Frame
}

// RegisterSnapshot is a copy of the register file for an external
// debugger front-end.
type RegisterSnapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
}

// Registers returns a snapshot of the register file.
func (m *Machine) Registers() RegisterSnapshot {
	c := m.CPU
	return RegisterSnapshot{
		A: c.A, F: c.F, B: c.B, C: c.C,
		D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
	}
}

// Memory returns a copy of the given memory range, or an explicit
// failure when it runs past the addressable space.
func (m *Machine) Memory(addr uint16, length int) ([]byte, error) {
	return m.Bus.Read(addr, length)
}
