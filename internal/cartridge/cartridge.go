// Package cartridge provides parsing of cartridge images. Each
// cartridge carries a header at 0x0100 - 0x014F describing the game
// and the hardware it expects; the rest of the image is the program
// itself. Bank switching hardware is identified from the header but
// not emulated.
package cartridge

import "fmt"

const (
	// headerStart is the offset of the parsed header fields within
	// the image.
	headerStart = 0x0100
	// headerEnd is one past the last header byte.
	headerEnd = 0x0150
)

// Cartridge is a loaded cartridge image with its parsed header.
type Cartridge struct {
	rom    []byte
	header Header
}

// New parses the given image and returns a Cartridge. Images too
// small to carry a header are rejected.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("cartridge: image too small for header: %d bytes", len(rom))
	}
	return &Cartridge{
		rom:    rom,
		header: parseHeader(rom[headerStart:headerEnd]),
	}, nil
}

// Header returns the parsed header. The header is read-only once the
// image is loaded.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title string from the header.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// ROM returns the raw image.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// VerifyHeaderChecksum recomputes the header checksum over
// 0x0134 - 0x014C and compares it to the stored byte.
func (c *Cartridge) VerifyHeaderChecksum() bool {
	var sum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - c.rom[i] - 1
	}
	return sum == c.header.HeaderChecksum
}
