package bus

// Region is a named, half-open interval of the address space.
// Start is inclusive, End exclusive.
type Region struct {
	Name  string
	Start uint32
	End   uint32
}

// Regions partitions the 16-bit address space without overlap. The
// table is ordered by ascending upper bound; Region relies on that
// ordering for its first-fit scan.
var Regions = []Region{
	{"ROM0", 0x0000, 0x4000},   // cartridge, fixed bank
	{"ROMX", 0x4000, 0x8000},   // cartridge, switchable bank
	{"VRAM", 0x8000, 0xA000},   // video RAM
	{"SRAM", 0xA000, 0xC000},   // cartridge RAM
	{"WRAM0", 0xC000, 0xD000},  // work RAM, fixed bank
	{"WRAMX", 0xD000, 0xE000},  // work RAM, switchable bank
	{"ECHO", 0xE000, 0xFE00},   // restricted echo of work RAM
	{"OAM", 0xFE00, 0xFEA0},    // sprite attribute table
	{"UNUSED", 0xFEA0, 0xFF00}, // restricted
	{"IO", 0xFF00, 0xFF80},     // I/O registers
	{"HRAM", 0xFF80, 0xFFFF},   // high RAM
	{"IE", 0xFFFF, 0x10000},    // interrupt enable register
}

// Region resolves an address to the region containing it: the first
// entry of the table whose upper bound exceeds the address.
func (b *Bus) Region(address uint16) Region {
	for _, r := range Regions {
		if uint32(address) < r.End {
			return r
		}
	}
	// unreachable while Regions covers the full space
	panic("bus: region table does not cover address space")
}
