package cpu

// Info is the immutable identity of an opcode: its mnemonic
// template, total encoded length in bytes (prefix and operands
// included) and baseline cycle cost in T-cycles. Conditional
// instructions carry a second cycle count for the condition-false
// path. Descriptors are metadata only; per-fetch operand state lives
// on the Instruction values Decode returns.
type Info struct {
	Mnemonic  string
	Length    uint8
	Cycles    uint8
	CyclesAlt uint8 // condition-false cycle cost, 0 when unconditional
}

// InstructionSet is the metadata table for the non-extended opcode
// space. Unassigned byte values hold the zero Info and decode to no
// descriptor.
var InstructionSet = [256]Info{
	0x00: {Mnemonic: "NOP", Length: 1, Cycles: 4},
	0x01: {Mnemonic: "LD BC, d16", Length: 3, Cycles: 12},
	0x02: {Mnemonic: "LD (BC), A", Length: 1, Cycles: 8},
	0x03: {Mnemonic: "INC BC", Length: 1, Cycles: 8},
	0x04: {Mnemonic: "INC B", Length: 1, Cycles: 4},
	0x05: {Mnemonic: "DEC B", Length: 1, Cycles: 4},
	0x06: {Mnemonic: "LD B, d8", Length: 2, Cycles: 8},
	0x07: {Mnemonic: "RLCA", Length: 1, Cycles: 4},
	0x08: {Mnemonic: "LD (a16), SP", Length: 3, Cycles: 20},
	0x09: {Mnemonic: "ADD HL, BC", Length: 1, Cycles: 8},
	0x0A: {Mnemonic: "LD A, (BC)", Length: 1, Cycles: 8},
	0x0B: {Mnemonic: "DEC BC", Length: 1, Cycles: 8},
	0x0C: {Mnemonic: "INC C", Length: 1, Cycles: 4},
	0x0D: {Mnemonic: "DEC C", Length: 1, Cycles: 4},
	0x0E: {Mnemonic: "LD C, d8", Length: 2, Cycles: 8},
	0x0F: {Mnemonic: "RRCA", Length: 1, Cycles: 4},
	0x10: {Mnemonic: "STOP", Length: 2, Cycles: 4},
	0x11: {Mnemonic: "LD DE, d16", Length: 3, Cycles: 12},
	0x12: {Mnemonic: "LD (DE), A", Length: 1, Cycles: 8},
	0x13: {Mnemonic: "INC DE", Length: 1, Cycles: 8},
	0x14: {Mnemonic: "INC D", Length: 1, Cycles: 4},
	0x15: {Mnemonic: "DEC D", Length: 1, Cycles: 4},
	0x16: {Mnemonic: "LD D, d8", Length: 2, Cycles: 8},
	0x17: {Mnemonic: "RLA", Length: 1, Cycles: 4},
	0x18: {Mnemonic: "JR r8", Length: 2, Cycles: 12},
	0x19: {Mnemonic: "ADD HL, DE", Length: 1, Cycles: 8},
	0x1A: {Mnemonic: "LD A, (DE)", Length: 1, Cycles: 8},
	0x1B: {Mnemonic: "DEC DE", Length: 1, Cycles: 8},
	0x1C: {Mnemonic: "INC E", Length: 1, Cycles: 4},
	0x1D: {Mnemonic: "DEC E", Length: 1, Cycles: 4},
	0x1E: {Mnemonic: "LD E, d8", Length: 2, Cycles: 8},
	0x1F: {Mnemonic: "RRA", Length: 1, Cycles: 4},
	0x20: {Mnemonic: "JR NZ, r8", Length: 2, Cycles: 12, CyclesAlt: 8},
	0x21: {Mnemonic: "LD HL, d16", Length: 3, Cycles: 12},
	0x22: {Mnemonic: "LD (HL+), A", Length: 1, Cycles: 8},
	0x23: {Mnemonic: "INC HL", Length: 1, Cycles: 8},
	0x24: {Mnemonic: "INC H", Length: 1, Cycles: 4},
	0x25: {Mnemonic: "DEC H", Length: 1, Cycles: 4},
	0x26: {Mnemonic: "LD H, d8", Length: 2, Cycles: 8},
	0x27: {Mnemonic: "DAA", Length: 1, Cycles: 4},
	0x28: {Mnemonic: "JR Z, r8", Length: 2, Cycles: 12, CyclesAlt: 8},
	0x29: {Mnemonic: "ADD HL, HL", Length: 1, Cycles: 8},
	0x2A: {Mnemonic: "LD A, (HL+)", Length: 1, Cycles: 8},
	0x2B: {Mnemonic: "DEC HL", Length: 1, Cycles: 8},
	0x2C: {Mnemonic: "INC L", Length: 1, Cycles: 4},
	0x2D: {Mnemonic: "DEC L", Length: 1, Cycles: 4},
	0x2E: {Mnemonic: "LD L, d8", Length: 2, Cycles: 8},
	0x2F: {Mnemonic: "CPL", Length: 1, Cycles: 4},
	0x30: {Mnemonic: "JR NC, r8", Length: 2, Cycles: 12, CyclesAlt: 8},
	0x31: {Mnemonic: "LD SP, d16", Length: 3, Cycles: 12},
	0x32: {Mnemonic: "LD (HL-), A", Length: 1, Cycles: 8},
	0x33: {Mnemonic: "INC SP", Length: 1, Cycles: 8},
	0x34: {Mnemonic: "INC (HL)", Length: 1, Cycles: 12},
	0x35: {Mnemonic: "DEC (HL)", Length: 1, Cycles: 12},
	0x36: {Mnemonic: "LD (HL), d8", Length: 2, Cycles: 12},
	0x37: {Mnemonic: "SCF", Length: 1, Cycles: 4},
	0x38: {Mnemonic: "JR C, r8", Length: 2, Cycles: 12, CyclesAlt: 8},
	0x39: {Mnemonic: "ADD HL, SP", Length: 1, Cycles: 8},
	0x3A: {Mnemonic: "LD A, (HL-)", Length: 1, Cycles: 8},
	0x3B: {Mnemonic: "DEC SP", Length: 1, Cycles: 8},
	0x3C: {Mnemonic: "INC A", Length: 1, Cycles: 4},
	0x3D: {Mnemonic: "DEC A", Length: 1, Cycles: 4},
	0x3E: {Mnemonic: "LD A, d8", Length: 2, Cycles: 8},
	0x3F: {Mnemonic: "CCF", Length: 1, Cycles: 4},
	0x76: {Mnemonic: "HALT", Length: 1, Cycles: 4},
	0xC0: {Mnemonic: "RET NZ", Length: 1, Cycles: 20, CyclesAlt: 8},
	0xC1: {Mnemonic: "POP BC", Length: 1, Cycles: 12},
	0xC2: {Mnemonic: "JP NZ, a16", Length: 3, Cycles: 16, CyclesAlt: 12},
	0xC3: {Mnemonic: "JP a16", Length: 3, Cycles: 16},
	0xC4: {Mnemonic: "CALL NZ, a16", Length: 3, Cycles: 24, CyclesAlt: 12},
	0xC5: {Mnemonic: "PUSH BC", Length: 1, Cycles: 16},
	0xC6: {Mnemonic: "ADD A, d8", Length: 2, Cycles: 8},
	0xC7: {Mnemonic: "RST 00H", Length: 1, Cycles: 16},
	0xC8: {Mnemonic: "RET Z", Length: 1, Cycles: 20, CyclesAlt: 8},
	0xC9: {Mnemonic: "RET", Length: 1, Cycles: 16},
	0xCA: {Mnemonic: "JP Z, a16", Length: 3, Cycles: 16, CyclesAlt: 12},
	0xCC: {Mnemonic: "CALL Z, a16", Length: 3, Cycles: 24, CyclesAlt: 12},
	0xCD: {Mnemonic: "CALL a16", Length: 3, Cycles: 24},
	0xCE: {Mnemonic: "ADC A, d8", Length: 2, Cycles: 8},
	0xCF: {Mnemonic: "RST 08H", Length: 1, Cycles: 16},
	0xD0: {Mnemonic: "RET NC", Length: 1, Cycles: 20, CyclesAlt: 8},
	0xD1: {Mnemonic: "POP DE", Length: 1, Cycles: 12},
	0xD2: {Mnemonic: "JP NC, a16", Length: 3, Cycles: 16, CyclesAlt: 12},
	0xD4: {Mnemonic: "CALL NC, a16", Length: 3, Cycles: 24, CyclesAlt: 12},
	0xD5: {Mnemonic: "PUSH DE", Length: 1, Cycles: 16},
	0xD6: {Mnemonic: "SUB d8", Length: 2, Cycles: 8},
	0xD7: {Mnemonic: "RST 10H", Length: 1, Cycles: 16},
	0xD8: {Mnemonic: "RET C", Length: 1, Cycles: 20, CyclesAlt: 8},
	0xD9: {Mnemonic: "RETI", Length: 1, Cycles: 16},
	0xDA: {Mnemonic: "JP C, a16", Length: 3, Cycles: 16, CyclesAlt: 12},
	0xDC: {Mnemonic: "CALL C, a16", Length: 3, Cycles: 24, CyclesAlt: 12},
	0xDE: {Mnemonic: "SBC A, d8", Length: 2, Cycles: 8},
	0xDF: {Mnemonic: "RST 18H", Length: 1, Cycles: 16},
	0xE0: {Mnemonic: "LDH (a8), A", Length: 2, Cycles: 12},
	0xE1: {Mnemonic: "POP HL", Length: 1, Cycles: 12},
	0xE2: {Mnemonic: "LD (C), A", Length: 1, Cycles: 8},
	0xE5: {Mnemonic: "PUSH HL", Length: 1, Cycles: 16},
	0xE6: {Mnemonic: "AND d8", Length: 2, Cycles: 8},
	0xE7: {Mnemonic: "RST 20H", Length: 1, Cycles: 16},
	0xE8: {Mnemonic: "ADD SP, r8", Length: 2, Cycles: 16},
	0xE9: {Mnemonic: "JP HL", Length: 1, Cycles: 4},
	0xEA: {Mnemonic: "LD (a16), A", Length: 3, Cycles: 16},
	0xEE: {Mnemonic: "XOR d8", Length: 2, Cycles: 8},
	0xEF: {Mnemonic: "RST 28H", Length: 1, Cycles: 16},
	0xF0: {Mnemonic: "LDH A, (a8)", Length: 2, Cycles: 12},
	0xF1: {Mnemonic: "POP AF", Length: 1, Cycles: 12},
	0xF2: {Mnemonic: "LD A, (C)", Length: 1, Cycles: 8},
	0xF3: {Mnemonic: "DI", Length: 1, Cycles: 4},
	0xF5: {Mnemonic: "PUSH AF", Length: 1, Cycles: 16},
	0xF6: {Mnemonic: "OR d8", Length: 2, Cycles: 8},
	0xF7: {Mnemonic: "RST 30H", Length: 1, Cycles: 16},
	0xF8: {Mnemonic: "LD HL, SP+r8", Length: 2, Cycles: 12},
	0xF9: {Mnemonic: "LD SP, HL", Length: 1, Cycles: 8},
	0xFA: {Mnemonic: "LD A, (a16)", Length: 3, Cycles: 16},
	0xFB: {Mnemonic: "EI", Length: 1, Cycles: 4},
	0xFE: {Mnemonic: "CP d8", Length: 2, Cycles: 8},
	0xFF: {Mnemonic: "RST 38H", Length: 1, Cycles: 16},
}

// InstructionSetCB is the metadata table for the CB-prefixed opcode
// space. Every byte value is assigned; lengths include the prefix.
var InstructionSetCB [256]Info

// registerNames indexes the standard 8-bit operand encoding: 0-5 are
// B, C, D, E, H, L, 6 denotes indirect access through HL and 7 is A.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// rotateNames indexes the rotate/shift/swap selector of the
// CB-prefixed space.
var rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// invalidOpcodes is the set of non-extended byte values with no
// assigned instruction. 0xCB is the extension prefix, not an
// instruction in its own right.
var invalidOpcodes = map[uint8]bool{
	0xCB: true, 0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

func init() {
	// the register-to-register load and arithmetic quadrants, and
	// the whole CB-prefixed space, are regular enough to build from
	// their encodings
	for z := uint8(0); z < 8; z++ {
		cycles := uint8(4)
		if z == 6 {
			cycles = 8
		}
		for y := uint8(0); y < 8; y++ {
			op := 0x40 | y<<3 | z
			if op == 0x76 { // LD (HL), (HL) is HALT
				continue
			}
			ldCycles := cycles
			if y == 6 {
				ldCycles = 8
			}
			InstructionSet[op] = Info{
				Mnemonic: "LD " + registerNames[y] + ", " + registerNames[z],
				Length:   1,
				Cycles:   ldCycles,
			}
		}
		aluNames := [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
		for y := uint8(0); y < 8; y++ {
			InstructionSet[0x80|y<<3|z] = Info{
				Mnemonic: aluNames[y] + " " + registerNames[z],
				Length:   1,
				Cycles:   cycles,
			}
		}
	}

	for op := 0; op < 256; op++ {
		x, y, z := uint8(op)>>6, uint8(op)>>3&0x7, uint8(op)&0x7
		cycles := uint8(8)
		if z == 6 {
			// indirect operands cost extra; BIT only reads
			if x == 1 {
				cycles = 12
			} else {
				cycles = 16
			}
		}
		var mnemonic string
		switch x {
		case 0:
			mnemonic = rotateNames[y] + " " + registerNames[z]
		case 1:
			mnemonic = "BIT " + string('0'+y) + ", " + registerNames[z]
		case 2:
			mnemonic = "RES " + string('0'+y) + ", " + registerNames[z]
		case 3:
			mnemonic = "SET " + string('0'+y) + ", " + registerNames[z]
		}
		InstructionSetCB[op] = Info{Mnemonic: mnemonic, Length: 2, Cycles: cycles}
	}
}
