package cartridge

import (
	"fmt"
	"strings"
)

// Flag describes a cartridge's colour hardware support, parsed from
// the byte at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// Type is the cartridge/MBC type byte at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

// MBC is the enumerated memory bank controller kind a Type maps to.
// Only identification is in scope; the switching logic itself is not
// emulated.
type MBC uint8

const (
	MBCNone MBC = iota
	MBC1Kind
	MBC2Kind
	MBC3Kind
	MBC5Kind
	MBCOther
)

// MBCKind maps the cartridge type byte to its bank controller kind.
func (t Type) MBCKind() MBC {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return MBCNone
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return MBC1Kind
	case MBC2, MBC2BATT:
		return MBC2Kind
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return MBC3Kind
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return MBC5Kind
	}
	return MBCOther
}

// ramMAP translates the RAM size code at 0x0149 to a size in bytes.
var ramMAP = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header represents the header of a cartridge, located at
// 0x0100 - 0x014F of the image. All fields sit at fixed offsets.
type Header struct {
	// 0x0134 - 0x0143 - title of the game, NUL padded
	Title string

	// 0x013F - 0x0142 - manufacturer code, overlapping the title
	// region on older cartridges
	ManufacturerCode string

	// 0x0143 - colour hardware support flag
	CartridgeGBMode Flag

	// 0x0144 - 0x0145 - new licensee code
	NewLicenseeCode string

	// 0x0147 - cartridge/MBC type
	CartridgeType Type

	// 0x0148/0x0149 - ROM/RAM sizes decoded from their codes
	ROMSize uint
	RAMSize uint

	// 0x014B/0x014D/0x014E-0x014F - licensee and checksum bytes
	OldLicenseeCode uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// parseHeader parses the 0x50 bytes starting at 0x0100.
func parseHeader(header []byte) Header {
	h := Header{}

	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// on DMG-only cartridges the title runs through 0x0143,
	// otherwise that byte belongs to the mode flag
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = trimTitle(header[0x34:0x44])
	} else {
		h.Title = trimTitle(header[0x34:0x43])
	}

	h.ManufacturerCode = string(header[0x3F:0x43])
	h.NewLicenseeCode = string(header[0x44:0x46])
	h.CartridgeType = Type(header[0x47])

	// ROM size is 32kB x (1 << n)
	h.ROMSize = (32 * 1024) * (1 << header[0x48])
	h.RAMSize = ramMAP[header[0x49]]

	h.OldLicenseeCode = header[0x4B]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

func trimTitle(raw []byte) string {
	return strings.TrimRight(string(raw), "\x00")
}

// Hardware returns the hardware family the cartridge targets.
func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.ROMSize/1024, h.RAMSize/1024)
}
