package cpu

import "testing"

func newFlagCPU() *CPU {
	return New(nil, nil, nil)
}

func TestFlags(t *testing.T) {
	flags := []struct {
		name string
		flag Flag
	}{
		{"zero", FlagZero},
		{"subtract", FlagSubtract},
		{"half carry", FlagHalfCarry},
		{"carry", FlagCarry},
	}

	t.Run("set and clear", func(t *testing.T) {
		c := newFlagCPU()
		for _, f := range flags {
			c.setFlag(f.flag)
			if !c.isFlagSet(f.flag) {
				t.Errorf("expected %s flag to be set", f.name)
			}
			c.setFlag(f.flag) // setting twice changes nothing
			if !c.isFlagSet(f.flag) {
				t.Errorf("expected %s flag to stay set", f.name)
			}
			c.clearFlag(f.flag)
			if c.isFlagSet(f.flag) {
				t.Errorf("expected %s flag to be cleared", f.name)
			}
			c.clearFlag(f.flag)
			if c.isFlagSet(f.flag) {
				t.Errorf("expected %s flag to stay cleared", f.name)
			}
		}
	})

	t.Run("does not perturb the others", func(t *testing.T) {
		for _, f := range flags {
			c := newFlagCPU()
			for _, other := range flags {
				if other.flag != f.flag {
					c.setFlag(other.flag)
				}
			}
			before := c.F

			c.setFlag(f.flag)
			if c.F != before|f.flag {
				t.Errorf("expected setting %s to leave the others, got F=%02X", f.name, c.F)
			}
			c.clearFlag(f.flag)
			if c.F != before {
				t.Errorf("expected clearing %s to restore F=%02X, got %02X", f.name, before, c.F)
			}
		}
	})

	t.Run("setFlags keeps the low nibble zero", func(t *testing.T) {
		c := newFlagCPU()
		c.setFlags(true, true, true, true)
		if c.F != 0xF0 {
			t.Errorf("expected F F0, got %02X", c.F)
		}
		c.setFlags(false, false, false, false)
		if c.F != 0x00 {
			t.Errorf("expected F 00, got %02X", c.F)
		}
		c.setFlags(true, false, false, true)
		if c.F != FlagZero|FlagCarry {
			t.Errorf("expected F %02X, got %02X", FlagZero|FlagCarry, c.F)
		}
	})
}

func TestHalfCarryHelpers(t *testing.T) {
	t.Run("half carry add", func(t *testing.T) {
		tests := []struct {
			a, b uint8
			want bool
		}{
			{0x0F, 0x01, true},
			{0x0E, 0x01, false},
			{0x08, 0x08, true},
			{0xF0, 0x0F, false},
			{0xFF, 0x01, true},
		}
		for _, tt := range tests {
			if got := halfCarryAdd(tt.a, tt.b); got != tt.want {
				t.Errorf("expected halfCarryAdd(%02X, %02X) to be %t", tt.a, tt.b, tt.want)
			}
		}
	})
	t.Run("half carry sub", func(t *testing.T) {
		tests := []struct {
			a, b uint8
			want bool
		}{
			{0x10, 0x01, true},
			{0x11, 0x01, false},
			{0x00, 0x00, false},
			{0x3E, 0x0F, true},
		}
		for _, tt := range tests {
			if got := halfCarrySub(tt.a, tt.b); got != tt.want {
				t.Errorf("expected halfCarrySub(%02X, %02X) to be %t", tt.a, tt.b, tt.want)
			}
		}
	})
	t.Run("carry sub", func(t *testing.T) {
		if !carrySub(0x00, 0x01) {
			t.Error("expected a borrow subtracting 01 from 00")
		}
		if carrySub(0x01, 0x01) {
			t.Error("expected no borrow subtracting 01 from 01")
		}
	})
}
