package cpu

import "github.com/pixelmoss/dotmatrix/internal/types"

// add adds n (plus the carry flag when withCarry) to the A register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	carry := uint8(0)
	if withCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	c.setFlags(uint8(sum) == 0, false, c.A&0xF+n&0xF+carry > 0xF, sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts n (plus the carry flag when withCarry) from the A
// register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	carry := uint8(0)
	if withCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	diff := uint16(c.A) - uint16(n) - uint16(carry)
	c.setFlags(uint8(diff) == 0, true, uint16(c.A&0xF) < uint16(n&0xF)+uint16(carry), diff > 0xFF)
	c.A = uint8(diff)
}

// and performs a bitwise AND of n and the A register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset. H - Set. C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR of n and the A register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset. H - Reset. C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR of n and the A register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset. H - Reset. C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare performs the subtraction A - n for flag purposes only; the
// result is recomputed and discarded, never stored.
//
// Flags affected:
//
//	Z - Set if A == n.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A-n == 0, true, halfCarrySub(c.A, n), carrySub(c.A, n))
}

// increment adds 1 to n.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.setFlags(incremented == 0, false, halfCarryAdd(n, 1), c.isFlagSet(FlagCarry))
	return incremented
}

// decrement subtracts 1 from n.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.setFlags(decremented == 0, true, halfCarrySub(n, 1), c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds nn to the HL register pair.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(nn)
	c.setFlags(c.isFlagSet(FlagZero), false, hl&0xFFF+nn&0xFFF > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned adds the signed immediate operand to SP and returns the
// result. Flags derive from the unsigned low-byte addition.
//
// Flags affected:
//
//	Z - Reset. N - Reset.
//	H - Set if carry from bit 3 of the low byte.
//	C - Set if carry from bit 7 of the low byte.
func (c *CPU) addSPSigned(offset uint8) uint16 {
	result := c.SP + uint16(int16(int8(offset)))
	c.setFlags(false, false, halfCarryAdd(uint8(c.SP), offset), uint8(c.SP)+offset < uint8(c.SP))
	return result
}

// rotateLeftThroughCarry rotates n left by one position, moving the
// carry flag into bit 0 and bit 7 into the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset. H - Reset.
//	C - Set from bit 7 of n.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	carryIn := uint8(0)
	if c.isFlagSet(FlagCarry) {
		carryIn = 1
	}
	rotated := n<<1 | carryIn
	c.setFlags(rotated == 0, false, false, n&types.Bit7 == types.Bit7)
	return rotated
}

// testBit tests bit b of value.
//
// Flags affected:
//
//	Z - Set if bit b of value is 0.
//	N - Reset. H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, b types.Bit) {
	c.setFlags(value&b != b, false, true, c.isFlagSet(FlagCarry))
}
