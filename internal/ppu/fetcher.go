package ppu

import (
	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/types"
)

// FetcherState enumerates the phases of the pixel fetcher's state
// machine.
type FetcherState uint8

const (
	// ReadTileID reads the tile number from the background map.
	ReadTileID FetcherState = iota
	// ReadTileDataLow reads the low bit-plane of the tile row.
	ReadTileDataLow
	// ReadTileDataHigh reads the high bit-plane of the tile row.
	ReadTileDataHigh
	// Idle pushes the assembled pixels once the queue has room,
	// stalling otherwise.
	Idle
)

// fifoRefillThreshold is the queue level at which the fetcher stalls
// instead of pushing another batch: a refill only happens while the
// queue holds fewer pixels than this, bounding it at threshold + 7.
const fifoRefillThreshold = 8

// tileMapColumns is the width of one background map row in tiles.
const tileMapColumns = 32

// Fetcher reads tile data from the bus and fills the pixel queue, one
// 8-pixel batch per completed fetch. It advances one phase every
// other invocation, modelling the hardware's 2:1 clock divider.
type Fetcher struct {
	b    *bus.Bus
	fifo FIFO

	state FetcherState
	ticks uint8 // 2:1 divider

	mapRowAddr uint16 // address of the current background map row
	tileLine   uint8  // y offset in pixels within the tile row
	tileIndex  uint8  // column within the map row, wraps at 32

	tileID   uint8
	dataLow  uint8
	dataHigh uint8
}

// NewFetcher returns a Fetcher reading through the given bus.
func NewFetcher(b *bus.Bus) *Fetcher {
	return &Fetcher{b: b}
}

// Start resets the fetcher for a new scanline.
func (f *Fetcher) Start(mapRowAddr uint16, tileLine uint8) {
	f.mapRowAddr = mapRowAddr
	f.tileLine = tileLine
	f.tileIndex = 0
	f.state = ReadTileID
	f.ticks = 0
	f.fifo.Clear()
}

// Tick advances the fetcher. Phases change only every other call.
func (f *Fetcher) Tick() {
	f.ticks++
	if f.ticks < 2 {
		return
	}
	f.ticks = 0

	switch f.state {
	case ReadTileID:
		f.tileID = f.b.ReadByte(f.mapRowAddr + uint16(f.tileIndex))
		f.state = ReadTileDataLow
	case ReadTileDataLow:
		f.dataLow = f.b.ReadByte(f.tileDataAddr())
		f.state = ReadTileDataHigh
	case ReadTileDataHigh:
		f.dataHigh = f.b.ReadByte(f.tileDataAddr() + 1)
		f.state = Idle
	case Idle:
		if f.fifo.Size() >= fifoRefillThreshold {
			// model fetch bandwidth: stall without refilling
			return
		}
		for bit := 7; bit >= 0; bit-- {
			lo := f.dataLow >> bit & 1
			hi := f.dataHigh >> bit & 1
			if err := f.fifo.Push(hi<<1 | lo); err != nil {
				// the threshold guarantees room for a full batch
				panic(err)
			}
		}
		f.tileIndex = (f.tileIndex + 1) % tileMapColumns
		f.state = ReadTileID
	}
}

// tileDataAddr resolves the current tile row's data address. LCDC
// bit 4 selects between an unsigned tile number from 0x8000 and a
// signed tile number from 0x9000.
func (f *Fetcher) tileDataAddr() uint16 {
	if f.b.Raw(types.LCDC)&types.Bit4 != 0 {
		return 0x8000 + uint16(f.tileID)*16 + uint16(f.tileLine)*2
	}
	return uint16(0x9000 + int32(int8(f.tileID))*16 + int32(f.tileLine)*2)
}

// PopPixel removes and returns the oldest queued pixel.
func (f *Fetcher) PopPixel() Pixel {
	p, err := f.fifo.Pop()
	if err != nil {
		panic(err)
	}
	return p
}

// CanPopPixel reports whether the queue is non-empty.
func (f *Fetcher) CanPopPixel() bool {
	return f.fifo.Size() > 0
}
