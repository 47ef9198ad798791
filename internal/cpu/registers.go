package cpu

// Register is an 8-bit register of the register file.
type Register = uint8

// RegisterPair is a 16-bit view over two 8-bit registers.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the pair as a 16-bit value.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the pair from a 16-bit value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers is the register file: eight 8-bit registers with 16-bit
// pair views, plus the 16-bit stack pointer and program counter held
// on the CPU itself. The flag register F only ever holds its upper
// nibble; the low 4 bits are always zero.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}
