package types

// HardwareAddress is the address of a memory mapped hardware
// register in the 0xFF00 - 0xFF7F I/O range (plus the interrupt
// enable register at 0xFFFF).
type HardwareAddress = uint16

const (
	// P1 is the joypad register. The lower 4 bits report button
	// state for whichever matrix half is selected by bits 4-5.
	P1 HardwareAddress = 0xFF00
	// SB is the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is the divider register. It exposes the upper 8 bits of
	// the 16-bit internal divider counter; writing any value
	// resets the whole counter to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter register. It is incremented at the
	// rate selected by TAC, and on overflow is reloaded from TMA
	// after a short delay, requesting a timer interrupt.
	TIMA HardwareAddress = 0xFF05
	// TMA is the timer modulo register, loaded into TIMA when it
	// overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the timer control register.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: 4096 Hz    01: 262144 Hz
	//           10: 65536 Hz   11: 16384 Hz
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt flag register. Only the lower 5 bits are
	// used; the upper 3 always read as 1.
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register.
	//
	//  Bit 7: LCD enable
	//  Bit 4: BG tile data area  (0=0x8800 signed, 1=0x8000 unsigned)
	//  Bit 3: BG tile map area   (0=0x9800, 1=0x9C00)
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register; the lower 2 bits report the
	// current display mode.
	STAT HardwareAddress = 0xFF41
	// SCY is the background vertical scroll register.
	SCY HardwareAddress = 0xFF42
	// SCX is the background horizontal scroll register.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline register, mirroring the pixel
	// pipeline's scanline counter. Range 0-153; 144-153 is VBlank.
	LY HardwareAddress = 0xFF44
	// LYC is the scanline compare register.
	LYC HardwareAddress = 0xFF45
	// BGP is the background palette register.
	BGP HardwareAddress = 0xFF47
	// VBK is the VRAM bank select register (CGB only).
	VBK HardwareAddress = 0xFF4F
	// BDIS is the boot ROM disable latch. Any write unmaps the boot
	// ROM overlay; it can never be mapped back in.
	BDIS HardwareAddress = 0xFF50
	// SVBK is the WRAM bank select register (CGB only).
	SVBK HardwareAddress = 0xFF70
	// IE is the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
