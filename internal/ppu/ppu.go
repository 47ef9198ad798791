// Package ppu provides the pixel pipeline of the emulated machine:
// the scanline/dot timing state machine that drives display mode
// transitions, and the pixel fetcher that reads tile data from the
// bus into a bounded queue.
package ppu

import (
	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/interrupt"
	"github.com/pixelmoss/dotmatrix/internal/ppu/lcd"
	"github.com/pixelmoss/dotmatrix/internal/types"
)

const (
	// ScreenWidth is the width of the visible viewport in pixels.
	ScreenWidth = 160
	// ScreenHeight is the number of visible scanlines.
	ScreenHeight = 144
	// LinesPerFrame counts the visible scanlines plus VBlank.
	LinesPerFrame = 154
	// DotsPerLine is the length of one scanline in dots. Four dots
	// elapse per machine cycle.
	DotsPerLine = 456
	// oamDots is the length of the sprite-search mode at the start
	// of each visible scanline.
	oamDots = 80
)

// PPU is the pixel pipeline. It owns the scanline/dot counters and
// the pixel fetcher, mirrors the current scanline into the LY
// register every tick, and assembles completed frames.
type PPU struct {
	b   *bus.Bus
	irq *interrupt.Service

	mode lcd.Mode
	dots uint16 // dot counter within the current scanline
	line uint8  // scanline counter
	lx   uint8  // pixels emitted on the current scanline

	fetcher *Fetcher

	// Frame is the most recently completed pixel buffer of 2-bit
	// colour indices. It is only handed out at frame boundaries.
	Frame [ScreenHeight][ScreenWidth]Pixel

	frameDone bool
}

// New returns a PPU reading through the given bus.
func New(b *bus.Bus, irq *interrupt.Service) *PPU {
	p := &PPU{
		b:       b,
		irq:     irq,
		mode:    lcd.OAM,
		fetcher: NewFetcher(b),
	}
	p.b.SetRaw(types.LY, 0)
	return p
}

// Mode returns the current display mode.
func (p *PPU) Mode() lcd.Mode {
	return p.mode
}

// Line returns the current scanline counter.
func (p *PPU) Line() uint8 {
	return p.line
}

// Fetcher returns the pixel fetcher.
func (p *PPU) Fetcher() *Fetcher {
	return p.fetcher
}

// FrameDone reports whether a frame completed since the last call,
// clearing the latch.
func (p *PPU) FrameDone() bool {
	done := p.frameDone
	p.frameDone = false
	return done
}

// Tick advances the pipeline by the given number of machine cycles;
// four dots elapse per cycle.
func (p *PPU) Tick(cycles uint8) {
	for i := 0; i < int(cycles)*4; i++ {
		p.stepDot()
	}
}

func (p *PPU) stepDot() {
	p.dots++

	if p.line < ScreenHeight {
		switch p.mode {
		case lcd.OAM:
			if p.dots == oamDots {
				p.mode = lcd.VRAM
				p.fetcher.Start(p.tileMapRowAddr(), (p.line+p.b.Raw(types.SCY))%8)
			}
		case lcd.VRAM:
			p.fetcher.Tick()
			if p.lx < ScreenWidth && p.fetcher.CanPopPixel() {
				p.Frame[p.line][p.lx] = p.fetcher.PopPixel()
				p.lx++
				if p.lx == ScreenWidth {
					p.mode = lcd.HBlank
				}
			}
		case lcd.HBlank:
			// wait out the rest of the scanline
		}
	}

	if p.dots == DotsPerLine {
		p.dots = 0
		p.lx = 0
		p.line++

		switch {
		case p.line == ScreenHeight:
			p.mode = lcd.VBlank
			p.irq.Request(interrupt.VBlankFlag)
			p.frameDone = true
		case p.line == LinesPerFrame:
			p.line = 0
			p.mode = lcd.OAM
		case p.line < ScreenHeight:
			p.mode = lcd.OAM
		}
	}

	// the scanline register mirrors the counter every tick, and the
	// low STAT bits mirror the mode
	p.b.SetRaw(types.LY, p.line)
	p.b.SetRaw(types.STAT, p.b.Raw(types.STAT)&^0x3|p.mode)
}

// tileMapRowAddr resolves the background map row for the current
// scanline. LCDC bit 3 selects between the two map base addresses.
func (p *PPU) tileMapRowAddr() uint16 {
	base := uint16(0x9800)
	if p.b.Raw(types.LCDC)&types.Bit3 != 0 {
		base = 0x9C00
	}
	row := uint16((p.line+p.b.Raw(types.SCY))/8) % tileMapColumns
	return base + row*tileMapColumns
}
