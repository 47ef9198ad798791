package ppu

import (
	"testing"

	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/types"
)

func TestFetcherBatch(t *testing.T) {
	b := bus.New(nil)
	b.SetRaw(types.LCDC, types.Bit4) // unsigned tile addressing

	// map row points at tile 1, whose first row interleaves the two
	// bit-planes into the pattern 3, 2, 1, 0, 3, 2, 1, 0
	b.SetRaw(0x9800, 0x01)
	b.SetRaw(0x8010, 0xAA) // low plane  10101010
	b.SetRaw(0x8011, 0xCC) // high plane 11001100

	f := NewFetcher(b)
	f.Start(0x9800, 0)

	// three read phases at two ticks each; nothing queued yet
	for i := 0; i < 7; i++ {
		f.Tick()
		if f.CanPopPixel() {
			t.Fatalf("expected no pixels after %d ticks", i+1)
		}
	}

	// the eighth tick completes the fetch and pushes the whole batch
	f.Tick()
	if got := f.fifo.Size(); got != 8 {
		t.Fatalf("expected a batch of 8 pixels, got %d", got)
	}

	want := []Pixel{3, 2, 1, 0, 3, 2, 1, 0}
	for i, w := range want {
		if got := f.PopPixel(); got != w {
			t.Errorf("expected pixel %d to be %d, got %d", i, w, got)
		}
	}
}

func TestFetcherStallsAtThreshold(t *testing.T) {
	b := bus.New(nil)
	b.SetRaw(types.LCDC, types.Bit4)

	f := NewFetcher(b)
	f.Start(0x9800, 0)

	// without consumption the queue parks at one batch
	maxSeen := 0
	for i := 0; i < 64; i++ {
		f.Tick()
		if s := f.fifo.Size(); s > maxSeen {
			maxSeen = s
		}
	}
	if maxSeen != 8 {
		t.Fatalf("expected the queue to park at 8 without consumption, got %d", maxSeen)
	}

	// dropping below the threshold admits exactly one more batch,
	// bounding the queue at 15
	f.PopPixel()
	sizes := map[int]bool{}
	for i := 0; i < 64; i++ {
		f.Tick()
		s := f.fifo.Size()
		sizes[s] = true
		if s > fifoRefillThreshold+7 {
			t.Fatalf("expected the queue never to exceed %d, got %d", fifoRefillThreshold+7, s)
		}
	}
	if !sizes[15] {
		t.Error("expected the queue to reach 15 after one pixel was consumed")
	}
	if sizes[8] || sizes[9] || sizes[10] || sizes[11] || sizes[12] || sizes[13] || sizes[14] {
		t.Error("expected refills to land in batches of exactly 8")
	}
}

func TestFetcherWrapsMapRow(t *testing.T) {
	b := bus.New(nil)
	b.SetRaw(types.LCDC, types.Bit4)

	f := NewFetcher(b)
	f.Start(0x9800, 0)

	f.tileIndex = 31
	for i := 0; i < 8; i++ {
		f.Tick()
	}
	if f.tileIndex != 0 {
		t.Errorf("expected the tile index to wrap to 0, got %d", f.tileIndex)
	}
}

func TestTileDataAddr(t *testing.T) {
	b := bus.New(nil)
	f := NewFetcher(b)

	t.Run("unsigned from 8000", func(t *testing.T) {
		b.SetRaw(types.LCDC, types.Bit4)
		f.tileID = 0xFF
		f.tileLine = 3
		if got := f.tileDataAddr(); got != 0x8000+0xFF*16+3*2 {
			t.Errorf("expected %04X, got %04X", 0x8000+0xFF*16+3*2, got)
		}
	})
	t.Run("signed from 9000", func(t *testing.T) {
		b.SetRaw(types.LCDC, 0)
		f.tileID = 0xFF // -1
		f.tileLine = 0
		if got := f.tileDataAddr(); got != 0x8FF0 {
			t.Errorf("expected 8FF0, got %04X", got)
		}
		f.tileID = 0x7F // +127
		f.tileLine = 7
		if got := f.tileDataAddr(); got != 0x9000+127*16+7*2 {
			t.Errorf("expected %04X, got %04X", 0x9000+127*16+7*2, got)
		}
	})
}
