// Package cpu provides the instruction fetch-decode-execute engine
// of the emulated machine. Decoding is a pure function over static
// metadata tables; execution is a dispatch over the decoded
// instruction's kind.
package cpu

import (
	"fmt"

	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/interrupt"
	"github.com/pixelmoss/dotmatrix/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
	// prefix marks the next byte as belonging to the extended
	// instruction table.
	prefix = 0xCB
)

type mode = uint8

const (
	// ModeNormal is the normal fetch-decode-execute mode.
	ModeNormal mode = iota
	// ModeHalt pauses execution until an interrupt is pending.
	ModeHalt
	// ModeStop pauses execution until an interrupt is pending.
	ModeStop
	// ModeEnableIME enables the IME before the next instruction.
	ModeEnableIME
)

// CPU is the processor core. It owns the register file and drives
// all memory traffic through the bus.
type CPU struct {
	// PC is the program counter, pointing at the next byte to fetch.
	PC uint16
	// SP is the stack pointer, pointing at the top of the stack.
	SP uint16
	Registers

	b   *bus.Bus
	irq *interrupt.Service
	log log.Logger

	// Debug enables per-instruction disassembly and register dumps.
	Debug bool
	// DebugBreakpoint latches true when the program counter reaches
	// the configured breakpoint address. A debugger front-end polls
	// and clears it; the core never blocks on it.
	DebugBreakpoint bool

	breakpoint    uint16
	hasBreakpoint bool

	mode   mode
	cycles uint8 // T-cycles consumed by the current Tick
}

// New creates a CPU attached to the given bus and interrupt service.
func New(b *bus.Bus, irq *interrupt.Service, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	c := &CPU{
		b:   b,
		irq: irq,
		log: l,
	}
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}
	return c
}

// SetBreakpoint arms the single breakpoint address.
func (c *CPU) SetBreakpoint(addr uint16) {
	c.breakpoint = addr
	c.hasBreakpoint = true
}

// ClearBreakpoint disarms the breakpoint.
func (c *CPU) ClearBreakpoint() {
	c.hasBreakpoint = false
	c.DebugBreakpoint = false
}

// Tick executes one instruction (or one idle cycle in halt/stop
// mode) and returns the number of elapsed machine cycles. One
// machine cycle is four T-cycles.
func (c *CPU) Tick() uint8 {
	c.cycles = 0

	switch c.mode {
	case ModeHalt, ModeStop:
		// the clock keeps running while execution is paused; any
		// pending interrupt wakes the core even with the IME clear
		c.cycles = 4
		if c.irq.HasInterrupts() {
			c.mode = ModeNormal
			if c.irq.IME {
				c.serviceInterrupt()
			}
		}
		return c.cycles / 4
	case ModeEnableIME:
		c.irq.IME = true
		c.mode = ModeNormal
	}

	c.step()

	if c.irq.IME && c.irq.HasInterrupts() {
		c.serviceInterrupt()
	}

	if c.hasBreakpoint && c.PC == c.breakpoint {
		c.DebugBreakpoint = true
	}

	return c.cycles / 4
}

// step performs one fetch-decode-execute round.
func (c *CPU) step() {
	opcodePC := c.PC
	opcode := c.fetch()

	prefixed := opcode == prefix
	if prefixed {
		opcode = c.fetch()
	}

	ins, ok := Decode(opcode, prefixed)
	if !ok {
		// unassigned byte: skip without executing anything, leaving
		// the counter past the consumed byte(s)
		c.log.Errorf("cpu: no instruction for byte %02X at %04X", opcode, opcodePC)
		c.cycles += 4
		return
	}

	// read any remaining operand bytes into the descriptor
	consumed := uint8(1)
	if prefixed {
		consumed = 2
	}
	for i := consumed; i < ins.Length; i++ {
		ins.Operand[ins.OperandLen] = c.fetch()
		ins.OperandLen++
	}

	taken := c.execute(&ins)
	if taken || ins.CyclesAlt == 0 {
		c.cycles += ins.Cycles
	} else {
		c.cycles += ins.CyclesAlt
	}

	if c.Debug {
		c.log.Debugf("%04X: %-14s A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
			opcodePC, c.disassemble(&ins), c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
	}
}

// fetch reads one byte at the program counter and advances it.
func (c *CPU) fetch() uint8 {
	v := c.b.ReadByte(c.PC)
	c.PC++
	return v
}

// serviceInterrupt pushes the program counter and jumps to the
// pending interrupt's vector, clearing the IME.
func (c *CPU) serviceInterrupt() {
	c.SP--
	c.b.WriteByte(c.SP, uint8(c.PC>>8))

	vector := c.irq.Vector()

	c.SP--
	c.b.WriteByte(c.SP, uint8(c.PC))

	c.PC = vector
	c.irq.IME = false
	c.cycles += 20
	c.mode = ModeNormal
}

// disassemble renders an instruction's mnemonic template with its
// fetched operand substituted in.
func (c *CPU) disassemble(ins *Instruction) string {
	switch ins.OperandLen {
	case 1:
		return fmt.Sprintf("%s [%02X]", ins.Mnemonic, ins.Operand[0])
	case 2:
		return fmt.Sprintf("%s [%04X]", ins.Mnemonic, ins.Operand16())
	}
	return ins.Mnemonic
}
