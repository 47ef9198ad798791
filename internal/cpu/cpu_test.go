package cpu

import (
	"testing"

	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/interrupt"
)

const programBase = 0xC000

// newTestCPU returns a CPU with the given program loaded into work RAM
// and the counter pointing at it.
func newTestCPU(t *testing.T, program ...byte) (*CPU, *bus.Bus, *interrupt.Service) {
	t.Helper()
	b := bus.New(nil)
	irq := interrupt.NewService(b)
	c := New(b, irq, nil)
	if err := b.Write(programBase, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.PC = programBase
	c.SP = 0xFFFE
	return c, b, irq
}

func TestNop(t *testing.T) {
	c, b, _ := newTestCPU(t, 0x00)
	c.A, c.F, c.B, c.C = 0x12, 0xF0, 0x34, 0x56
	c.D, c.E, c.H, c.L = 0x78, 0x9A, 0xBC, 0xDE
	before := c.Registers
	b.SetRaw(0xC123, 0x42)

	cycles := c.Tick()

	if cycles != 1 {
		t.Errorf("expected 1 machine cycle, got %d", cycles)
	}
	if c.PC != programBase+1 {
		t.Errorf("expected PC %04X, got %04X", programBase+1, c.PC)
	}
	if c.SP != 0xFFFE {
		t.Errorf("expected SP untouched, got %04X", c.SP)
	}
	if c.A != before.A || c.F != before.F || c.B != before.B || c.C != before.C ||
		c.D != before.D || c.E != before.E || c.H != before.H || c.L != before.L {
		t.Error("expected the register file to be untouched")
	}
	if b.Raw(0xC123) != 0x42 {
		t.Error("expected memory to be untouched")
	}
}

func TestInvalidOpcode(t *testing.T) {
	c, _, _ := newTestCPU(t, 0xD3, 0x00)
	c.A = 0x42

	cycles := c.Tick()

	if cycles != 1 {
		t.Errorf("expected 1 machine cycle for an unassigned byte, got %d", cycles)
	}
	if c.PC != programBase+1 {
		t.Errorf("expected PC past the consumed byte, got %04X", c.PC)
	}
	if c.A != 0x42 || c.F != 0 {
		t.Error("expected the register file to be untouched")
	}

	// the following byte executes normally
	if got := c.Tick(); got != 1 {
		t.Errorf("expected the next instruction to run, got %d cycles", got)
	}
	if c.PC != programBase+2 {
		t.Errorf("expected PC %04X, got %04X", programBase+2, c.PC)
	}
}

func TestLoads(t *testing.T) {
	t.Run("LD r, d8", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x06, 0x42) // LD B, d8
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles, got %d", got)
		}
		if c.B != 0x42 {
			t.Errorf("expected B 42, got %02X", c.B)
		}
	})
	t.Run("LD rr, d16", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x21, 0xCD, 0xAB) // LD HL, d16
		c.Tick()
		if got := c.HL.Uint16(); got != 0xABCD {
			t.Errorf("expected HL ABCD, got %04X", got)
		}
	})
	t.Run("LD r, r", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x78) // LD A, B
		c.B = 0x99
		c.Tick()
		if c.A != 0x99 {
			t.Errorf("expected A 99, got %02X", c.A)
		}
	})
	t.Run("LD (HL+), A", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0x22)
		c.A = 0x55
		c.HL.SetUint16(0xC800)
		c.Tick()
		if got := b.Raw(0xC800); got != 0x55 {
			t.Errorf("expected memory 55, got %02X", got)
		}
		if got := c.HL.Uint16(); got != 0xC801 {
			t.Errorf("expected HL post-incremented to C801, got %04X", got)
		}
	})
	t.Run("LD A, (HL-)", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0x3A)
		b.SetRaw(0xC800, 0x77)
		c.HL.SetUint16(0xC800)
		c.Tick()
		if c.A != 0x77 {
			t.Errorf("expected A 77, got %02X", c.A)
		}
		if got := c.HL.Uint16(); got != 0xC7FF {
			t.Errorf("expected HL post-decremented to C7FF, got %04X", got)
		}
	})
	t.Run("LD (a16), SP", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0x08, 0x00, 0xC8) // LD (C800), SP
		c.SP = 0xBEEF
		c.Tick()
		if b.Raw(0xC800) != 0xEF || b.Raw(0xC801) != 0xBE {
			t.Errorf("expected SP stored little-endian, got %02X %02X", b.Raw(0xC800), b.Raw(0xC801))
		}
	})
	t.Run("LDH (a8), A", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xE0, 0x80) // 0xFF80, high RAM
		c.A = 0x66
		c.Tick()
		if got := b.Raw(0xFF80); got != 0x66 {
			t.Errorf("expected high ram 66, got %02X", got)
		}
	})
	t.Run("LD A, (C)", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xF2)
		b.SetRaw(0xFF81, 0x88)
		c.C = 0x81
		c.Tick()
		if c.A != 0x88 {
			t.Errorf("expected A 88, got %02X", c.A)
		}
	})
}

func TestPushPop(t *testing.T) {
	t.Run("roundtrip restores value and pointer", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xC5, 0xD1) // PUSH BC; POP DE
		c.BC.SetUint16(0x1234)

		c.Tick()
		if c.SP != 0xFFFC {
			t.Errorf("expected SP FFFC after push, got %04X", c.SP)
		}
		c.Tick()
		if c.SP != 0xFFFE {
			t.Errorf("expected SP restored to FFFE, got %04X", c.SP)
		}
		if got := c.DE.Uint16(); got != 0x1234 {
			t.Errorf("expected DE 1234, got %04X", got)
		}
	})
	t.Run("push stores high byte first", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xC5)
		c.BC.SetUint16(0xABCD)
		c.Tick()
		if b.Raw(0xFFFD) != 0xAB || b.Raw(0xFFFC) != 0xCD {
			t.Errorf("expected AB at FFFD and CD at FFFC, got %02X %02X", b.Raw(0xFFFD), b.Raw(0xFFFC))
		}
	})
	t.Run("pop AF masks the low flag bits", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xF1) // POP AF
		b.SetRaw(0xFFFC, 0xFF)
		b.SetRaw(0xFFFD, 0x12)
		c.SP = 0xFFFC
		c.Tick()
		if c.A != 0x12 {
			t.Errorf("expected A 12, got %02X", c.A)
		}
		if c.F != 0xF0 {
			t.Errorf("expected F F0, got %02X", c.F)
		}
	})
}

func TestJumps(t *testing.T) {
	t.Run("JP a16", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xC3, 0x00, 0xC8)
		if got := c.Tick(); got != 4 {
			t.Errorf("expected 4 machine cycles, got %d", got)
		}
		if c.PC != 0xC800 {
			t.Errorf("expected PC C800, got %04X", c.PC)
		}
	})
	t.Run("JR taken costs more than not taken", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x20, 0x05) // JR NZ, +5
		if got := c.Tick(); got != 3 {
			t.Errorf("expected 3 machine cycles when taken, got %d", got)
		}
		if c.PC != programBase+2+5 {
			t.Errorf("expected PC %04X, got %04X", programBase+2+5, c.PC)
		}

		c, _, _ = newTestCPU(t, 0x20, 0x05)
		c.setFlag(FlagZero)
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles when not taken, got %d", got)
		}
		if c.PC != programBase+2 {
			t.Errorf("expected PC %04X, got %04X", programBase+2, c.PC)
		}
	})
	t.Run("JR backwards", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x18, 0xFE) // JR -2, a tight loop
		c.Tick()
		if c.PC != programBase {
			t.Errorf("expected PC %04X, got %04X", programBase, c.PC)
		}
	})
	t.Run("JP HL", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xE9)
		c.HL.SetUint16(0xC900)
		c.Tick()
		if c.PC != 0xC900 {
			t.Errorf("expected PC C900, got %04X", c.PC)
		}
	})
}

func TestCallRet(t *testing.T) {
	t.Run("call pushes the return address", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xCD, 0x00, 0xC8) // CALL C800
		if got := c.Tick(); got != 6 {
			t.Errorf("expected 6 machine cycles, got %d", got)
		}
		if c.PC != 0xC800 {
			t.Errorf("expected PC C800, got %04X", c.PC)
		}
		ret := uint16(b.Raw(0xFFFD))<<8 | uint16(b.Raw(0xFFFC))
		if ret != programBase+3 {
			t.Errorf("expected return address %04X on the stack, got %04X", programBase+3, ret)
		}
	})
	t.Run("ret returns", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0xCD, 0x00, 0xC8)
		b.SetRaw(0xC800, 0xC9) // RET
		c.Tick()
		if got := c.Tick(); got != 4 {
			t.Errorf("expected 4 machine cycles, got %d", got)
		}
		if c.PC != programBase+3 {
			t.Errorf("expected PC %04X after return, got %04X", programBase+3, c.PC)
		}
		if c.SP != 0xFFFE {
			t.Errorf("expected SP restored, got %04X", c.SP)
		}
	})
	t.Run("conditional ret cycle cost", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xC0) // RET NZ
		c.setFlag(FlagZero)
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles when not taken, got %d", got)
		}
	})
	t.Run("rst jumps to its vector", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xEF) // RST 28H
		c.Tick()
		if c.PC != 0x0028 {
			t.Errorf("expected PC 0028, got %04X", c.PC)
		}
		if c.SP != 0xFFFC {
			t.Errorf("expected the return address pushed, SP %04X", c.SP)
		}
	})
	t.Run("reti re-enables interrupts", func(t *testing.T) {
		c, b, irq := newTestCPU(t, 0xD9)
		b.SetRaw(0xFFFC, 0x34)
		b.SetRaw(0xFFFD, 0x12)
		c.SP = 0xFFFC
		irq.IME = false
		c.Tick()
		if c.PC != 0x1234 {
			t.Errorf("expected PC 1234, got %04X", c.PC)
		}
		if !irq.IME {
			t.Error("expected the IME to be re-enabled")
		}
	})
}

func TestALUInstructions(t *testing.T) {
	t.Run("ADD A, B", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x80)
		c.A, c.B = 0x0F, 0x01
		c.Tick()
		if c.A != 0x10 {
			t.Errorf("expected A 10, got %02X", c.A)
		}
		if !c.isFlagSet(FlagHalfCarry) {
			t.Error("expected the half carry flag")
		}
	})
	t.Run("ADD A, (HL)", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0x86)
		b.SetRaw(0xC800, 0x22)
		c.A = 0x11
		c.HL.SetUint16(0xC800)
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles, got %d", got)
		}
		if c.A != 0x33 {
			t.Errorf("expected A 33, got %02X", c.A)
		}
	})
	t.Run("CP d8 leaves A alone", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xFE, 0x42)
		c.A = 0x42
		c.Tick()
		if c.A != 0x42 {
			t.Errorf("expected A untouched, got %02X", c.A)
		}
		if !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagSubtract) {
			t.Errorf("expected Z and N set, got F %02X", c.F)
		}
	})
	t.Run("INC (HL)", func(t *testing.T) {
		c, b, _ := newTestCPU(t, 0x34)
		b.SetRaw(0xC800, 0xFF)
		c.HL.SetUint16(0xC800)
		if got := c.Tick(); got != 3 {
			t.Errorf("expected 3 machine cycles, got %d", got)
		}
		if got := b.Raw(0xC800); got != 0x00 {
			t.Errorf("expected memory 00, got %02X", got)
		}
		if !c.isFlagSet(FlagZero) {
			t.Error("expected the zero flag")
		}
	})
	t.Run("DAA adjusts after decimal add", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0x27)
		c.A = 0x15 + 0x27 // 3C
		c.Tick()
		if c.A != 0x42 {
			t.Errorf("expected A 42, got %02X", c.A)
		}
	})
}

func TestCBInstructions(t *testing.T) {
	t.Run("RL B", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xCB, 0x10)
		c.B = 0x80
		c.setFlag(FlagCarry)
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles, got %d", got)
		}
		if c.B != 0x01 {
			t.Errorf("expected B 01, got %02X", c.B)
		}
		if !c.isFlagSet(FlagCarry) {
			t.Error("expected the carry flag from bit 7")
		}
	})
	t.Run("BIT 7, H", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xCB, 0x7C)
		c.H = 0x00
		c.Tick()
		if !c.isFlagSet(FlagZero) {
			t.Error("expected the zero flag for a clear bit")
		}
		c.PC = programBase
		c.H = 0x80
		c.Tick()
		if c.isFlagSet(FlagZero) {
			t.Error("expected the zero flag clear for a set bit")
		}
	})
	t.Run("SET and RES", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xCB, 0xDF, 0xCB, 0x9F) // SET 3, A; RES 3, A
		c.Tick()
		if c.A != 0x08 {
			t.Errorf("expected A 08, got %02X", c.A)
		}
		c.Tick()
		if c.A != 0x00 {
			t.Errorf("expected A 00, got %02X", c.A)
		}
	})
	t.Run("unimplemented rotate leaves the operand", func(t *testing.T) {
		c, _, _ := newTestCPU(t, 0xCB, 0x38) // SRL B
		c.B = 0x81
		if got := c.Tick(); got != 2 {
			t.Errorf("expected 2 machine cycles, got %d", got)
		}
		if c.B != 0x81 {
			t.Errorf("expected B untouched, got %02X", c.B)
		}
		if c.PC != programBase+2 {
			t.Errorf("expected PC %04X, got %04X", programBase+2, c.PC)
		}
	})
}

func TestInterruptHandling(t *testing.T) {
	t.Run("EI takes effect one instruction late", func(t *testing.T) {
		c, _, irq := newTestCPU(t, 0xFB, 0x00) // EI; NOP
		c.Tick()
		if irq.IME {
			t.Error("expected the IME still clear right after EI")
		}
		c.Tick()
		if !irq.IME {
			t.Error("expected the IME set after the following instruction")
		}
	})
	t.Run("DI is immediate", func(t *testing.T) {
		c, _, irq := newTestCPU(t, 0xF3)
		irq.IME = true
		c.Tick()
		if irq.IME {
			t.Error("expected the IME cleared")
		}
	})
	t.Run("service pushes PC and jumps to the vector", func(t *testing.T) {
		c, b, irq := newTestCPU(t, 0x00)
		irq.IME = true
		irq.Enable = interrupt.VBlankFlag
		irq.Request(interrupt.VBlankFlag)

		cycles := c.Tick()

		if c.PC != 0x0040 {
			t.Errorf("expected PC 0040, got %04X", c.PC)
		}
		if irq.IME {
			t.Error("expected the IME cleared during service")
		}
		if irq.Flag&interrupt.VBlankFlag != 0 {
			t.Error("expected the vblank flag cleared")
		}
		pushed := uint16(b.Raw(0xFFFD))<<8 | uint16(b.Raw(0xFFFC))
		if pushed != programBase+1 {
			t.Errorf("expected %04X pushed, got %04X", programBase+1, pushed)
		}
		if cycles != 6 {
			t.Errorf("expected 6 machine cycles, got %d", cycles)
		}
	})
	t.Run("halt wakes on a pending interrupt", func(t *testing.T) {
		c, _, irq := newTestCPU(t, 0x76, 0x04) // HALT; INC B
		c.Tick()

		// halted: ticks idle without touching the counter
		if got := c.Tick(); got != 1 {
			t.Errorf("expected 1 idle machine cycle, got %d", got)
		}
		if c.PC != programBase+1 {
			t.Errorf("expected PC parked at %04X, got %04X", programBase+1, c.PC)
		}

		irq.Enable = interrupt.TimerFlag
		irq.Request(interrupt.TimerFlag)
		c.Tick() // wakes without servicing, the IME is clear
		c.Tick() // executes INC B
		if c.B != 1 {
			t.Errorf("expected B 1 after waking, got %d", c.B)
		}
	})
}

func TestBreakpoint(t *testing.T) {
	c, _, _ := newTestCPU(t, 0x00, 0x00)
	c.SetBreakpoint(programBase + 1)

	c.Tick()
	if !c.DebugBreakpoint {
		t.Error("expected the breakpoint to latch")
	}

	c.ClearBreakpoint()
	if c.DebugBreakpoint {
		t.Error("expected the latch cleared")
	}
}
