package cpu

import "github.com/pixelmoss/dotmatrix/internal/types"

// Flag is a single flag bit position within the F register.
type Flag = uint8

const (
	FlagZero      Flag = types.Bit7
	FlagSubtract  Flag = types.Bit6
	FlagHalfCarry Flag = types.Bit5
	FlagCarry     Flag = types.Bit4
)

// setFlag sets the given flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= flag
}

// clearFlag clears the given flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag == flag
}

// setFlags sets all four flags at once. Bits 0-3 of F stay zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	v := uint8(0)
	if zero {
		v |= FlagZero
	}
	if subtract {
		v |= FlagSubtract
	}
	if halfCarry {
		v |= FlagHalfCarry
	}
	if carry {
		v |= FlagCarry
	}
	c.F = v
}

// halfCarryAdd reports a carry out of bit 3 when adding a and b.
func halfCarryAdd(a, b uint8) bool {
	return a&0xF+b&0xF > 0xF
}

// halfCarrySub reports a borrow from bit 4 when subtracting b from a.
func halfCarrySub(a, b uint8) bool {
	return a&0xF < b&0xF
}

// carrySub reports a full borrow when subtracting b from a.
func carrySub(a, b uint8) bool {
	return a < b
}
