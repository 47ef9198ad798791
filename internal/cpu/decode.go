package cpu

import "fmt"

// The decoder follows the standard bit-field decomposition of an
// instruction byte: x (bits 6-7) selects the family, y (bits 3-5) and
// z (bits 0-2) the member, with p = y >> 1 and q = y & 1 selecting
// among register-pair groupings.

// Reg8 selects an 8-bit operand in the standard encoding. IndHL
// denotes indirect access through the HL pair rather than a plain
// register.
type Reg8 uint8

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	IndHL
	RegA
)

// RegPair selects a 16-bit register pair. The stack-pointer slot of
// the push/pop grouping is substituted with AF.
type RegPair uint8

const (
	PairBC RegPair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

// Cond is the condition of a conditional jump, call or return.
type Cond uint8

const (
	CondAlways Cond = iota
	CondNZ
	CondZ
	CondNC
	CondC
)

// ALUOp selects an accumulator arithmetic/logic operation.
type ALUOp uint8

const (
	ALUAdd ALUOp = iota
	ALUAdc
	ALUSub
	ALUSbc
	ALUAnd
	ALUXor
	ALUOr
	ALUCp
)

// RotOp selects a CB-prefixed rotate/shift/swap operation.
type RotOp uint8

const (
	RotRLC RotOp = iota
	RotRRC
	RotRL
	RotRR
	RotSLA
	RotSRA
	RotSwap
	RotSRL
)

// AccOp selects one of the single-byte accumulator/flag operations
// in family 0.
type AccOp uint8

const (
	AccRLCA AccOp = iota
	AccRRCA
	AccRLA
	AccRRA
	AccDAA
	AccCPL
	AccSCF
	AccCCF
)

// Kind tags the semantic family of a decoded instruction. Execution
// dispatches over the tag; each kind uses only the Instruction fields
// its family needs.
type Kind uint8

const (
	KindNop Kind = iota
	KindStop
	KindHalt
	KindJR        // relative jump, conditional on Cond
	KindJP        // absolute jump, conditional on Cond
	KindJPHL      // jump to HL
	KindCall      // call, conditional on Cond
	KindRet       // return, conditional on Cond
	KindRetI      // return and re-enable interrupts
	KindRst       // restart to fixed vector (Vec)
	KindLoad8     // 8-bit register/indirect-HL move, Dst <- Src
	KindLoadImm8  // Dst <- d8
	KindLoadImm16 // Pair <- d16
	KindLoadInd   // accumulator <-> (Pair), optional HL post-inc/dec
	KindLoadAbs   // accumulator <-> (a16)
	KindLoadAbsSP // (a16) <- SP
	KindLoadSPHL  // SP <- HL
	KindLoadHLSP  // HL <- SP + r8
	KindAddSP     // SP <- SP + r8
	KindPush      // push Pair
	KindPop       // pop Pair
	KindIncDec8   // Dst <- Dst ± 1
	KindIncDec16  // Pair <- Pair ± 1
	KindAddHL     // HL <- HL + Pair
	KindALU       // accumulator op with Src or d8
	KindAcc       // RLCA/RRCA/RLA/RRA/DAA/CPL/SCF/CCF
	KindPort      // accumulator <-> 0xFF00 + a8 or + C
	KindDI
	KindEI
	KindRot // CB rotate/shift/swap on Dst
	KindBit // CB bit test
	KindRes // CB bit reset
	KindSet // CB bit set
)

// Instruction is a decoded opcode descriptor: the immutable identity
// from the metadata table, the decoded variant fields, and the
// per-fetch operand. Decode returns a freshly constructed value on
// every fetch, so no operand state is ever shared between fetches.
type Instruction struct {
	Info
	Opcode   uint8
	Prefixed bool

	Kind   Kind
	Dst    Reg8
	Src    Reg8
	Pair   RegPair
	Cond   Cond
	ALU    ALUOp
	Acc    AccOp
	Rot    RotOp
	Bit    uint8 // bit index of the CB bit operations
	Vec    uint8 // restart vector of KindRst
	Delta  int8  // direction of inc/dec and of HL post-adjustment
	ToAcc  bool  // direction of KindLoadInd/KindLoadAbs/KindPort
	ViaC   bool  // KindPort addressing via the C register
	SrcImm bool  // KindALU operand is the immediate byte

	// Operand holds the 0, 1 or 2 bytes of immediate data read after
	// the opcode byte(s).
	Operand    [2]uint8
	OperandLen uint8
}

// Operand16 returns the two operand bytes as a little-endian word.
func (i *Instruction) Operand16() uint16 {
	return uint16(i.Operand[1])<<8 | uint16(i.Operand[0])
}

// conditions indexes the cc encoding used by families 0 and 3.
var conditions = [4]Cond{CondNZ, CondZ, CondNC, CondC}

// Decode maps an instruction byte (plus the extended-table flag) to
// a freshly constructed opcode descriptor. It returns ok=false for
// the unassigned byte values of the non-extended space.
//
// A field combination that cannot be mapped inside a sub-table that
// claims to cover it indicates a defect in the decode table itself
// and panics.
func Decode(opcode uint8, prefixed bool) (Instruction, bool) {
	if prefixed {
		return decodeCB(opcode), true
	}
	if invalidOpcodes[opcode] {
		return Instruction{}, false
	}

	ins := Instruction{
		Info:   InstructionSet[opcode],
		Opcode: opcode,
	}

	x := opcode >> 6 & 0x3
	y := opcode >> 3 & 0x7
	z := opcode & 0x7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		decodeFamily0(&ins, y, z, p, q)
	case 1:
		if opcode == 0x76 {
			ins.Kind = KindHalt
			break
		}
		ins.Kind = KindLoad8
		ins.Dst = Reg8(y)
		ins.Src = Reg8(z)
	case 2:
		ins.Kind = KindALU
		ins.ALU = ALUOp(y)
		ins.Src = Reg8(z)
	case 3:
		decodeFamily3(&ins, y, z, p, q)
	}

	return ins, true
}

func decodeFamily0(ins *Instruction, y, z, p, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0:
			ins.Kind = KindNop
		case 1:
			ins.Kind = KindLoadAbsSP
		case 2:
			ins.Kind = KindStop
		case 3:
			ins.Kind = KindJR
			ins.Cond = CondAlways
		default: // 4..7
			ins.Kind = KindJR
			ins.Cond = conditions[y-4]
		}
	case 1:
		if q == 0 {
			ins.Kind = KindLoadImm16
			ins.Pair = RegPair(p)
		} else {
			ins.Kind = KindAddHL
			ins.Pair = RegPair(p)
		}
	case 2:
		ins.Kind = KindLoadInd
		ins.ToAcc = q == 1
		switch p {
		case 0:
			ins.Pair = PairBC
		case 1:
			ins.Pair = PairDE
		case 2:
			ins.Pair = PairHL
			ins.Delta = 1
		case 3:
			ins.Pair = PairHL
			ins.Delta = -1
		}
	case 3:
		ins.Kind = KindIncDec16
		ins.Pair = RegPair(p)
		ins.Delta = incDecDelta(q)
	case 4, 5:
		ins.Kind = KindIncDec8
		ins.Dst = Reg8(y)
		ins.Delta = incDecDelta(z - 4)
	case 6:
		ins.Kind = KindLoadImm8
		ins.Dst = Reg8(y)
	case 7:
		ins.Kind = KindAcc
		ins.Acc = AccOp(y)
	default:
		panic(fmt.Sprintf("cpu: family 0 decode hole: y=%d z=%d", y, z))
	}
}

func decodeFamily3(ins *Instruction, y, z, p, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0, 1, 2, 3:
			ins.Kind = KindRet
			ins.Cond = conditions[y]
		case 4:
			ins.Kind = KindPort
			ins.ToAcc = false
		case 5:
			ins.Kind = KindAddSP
		case 6:
			ins.Kind = KindPort
			ins.ToAcc = true
		case 7:
			ins.Kind = KindLoadHLSP
		}
	case 1:
		if q == 0 {
			ins.Kind = KindPop
			ins.Pair = pushPopPair(p)
		} else {
			switch p {
			case 0:
				ins.Kind = KindRet
				ins.Cond = CondAlways
			case 1:
				ins.Kind = KindRetI
			case 2:
				ins.Kind = KindJPHL
			case 3:
				ins.Kind = KindLoadSPHL
			}
		}
	case 2:
		switch y {
		case 0, 1, 2, 3:
			ins.Kind = KindJP
			ins.Cond = conditions[y]
		case 4:
			ins.Kind = KindPort
			ins.ToAcc = false
			ins.ViaC = true
		case 5:
			ins.Kind = KindLoadAbs
			ins.ToAcc = false
		case 6:
			ins.Kind = KindPort
			ins.ToAcc = true
			ins.ViaC = true
		case 7:
			ins.Kind = KindLoadAbs
			ins.ToAcc = true
		}
	case 3:
		switch y {
		case 0:
			ins.Kind = KindJP
			ins.Cond = CondAlways
		case 6:
			ins.Kind = KindDI
		case 7:
			ins.Kind = KindEI
		default:
			// y=1 is the CB prefix, y=2..5 are unassigned; both are
			// filtered before the sub-tables run
			panic(fmt.Sprintf("cpu: family 3 decode hole: y=%d z=%d", y, z))
		}
	case 4:
		if y > 3 {
			panic(fmt.Sprintf("cpu: family 3 decode hole: y=%d z=%d", y, z))
		}
		ins.Kind = KindCall
		ins.Cond = conditions[y]
	case 5:
		if q == 0 {
			ins.Kind = KindPush
			ins.Pair = pushPopPair(p)
		} else {
			if p != 0 {
				panic(fmt.Sprintf("cpu: family 3 decode hole: y=%d z=%d", y, z))
			}
			ins.Kind = KindCall
			ins.Cond = CondAlways
		}
	case 6:
		ins.Kind = KindALU
		ins.ALU = ALUOp(y)
		ins.SrcImm = true
	case 7:
		ins.Kind = KindRst
		ins.Vec = y * 8
	}
}

func decodeCB(opcode uint8) Instruction {
	ins := Instruction{
		Info:     InstructionSetCB[opcode],
		Opcode:   opcode,
		Prefixed: true,
		Dst:      Reg8(opcode & 0x7),
		Bit:      opcode >> 3 & 0x7,
	}
	switch opcode >> 6 & 0x3 {
	case 0:
		ins.Kind = KindRot
		ins.Rot = RotOp(opcode >> 3 & 0x7)
	case 1:
		ins.Kind = KindBit
	case 2:
		ins.Kind = KindRes
	case 3:
		ins.Kind = KindSet
	}
	return ins
}

// incDecDelta maps the low selector bit of the inc/dec encodings to
// a direction.
func incDecDelta(bit uint8) int8 {
	if bit == 0 {
		return 1
	}
	return -1
}

// pushPopPair maps the rp2 grouping, where the slot that would denote
// the stack pointer is substituted with AF.
func pushPopPair(p uint8) RegPair {
	if p == 3 {
		return PairAF
	}
	return RegPair(p)
}
