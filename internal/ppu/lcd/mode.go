// Package lcd provides the display mode constants shared between the
// pixel pipeline and the LCD status register.
package lcd

// Mode represents a mode of the LCD. The numeric values are the ones
// reported in the low two bits of the STAT register.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode at the end of each
	// visible scanline.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode covering the non-visible
	// scanlines.
	VBlank
	// OAM is the sprite attribute search mode at the start of each
	// visible scanline.
	OAM
	// VRAM is the data-transfer mode during which pixels are fetched
	// and shifted out.
	VRAM
)
