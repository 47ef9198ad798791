package ppu

import "errors"

// Pixel is a 2-bit colour index produced by combining the two
// bit-planes of tile data.
type Pixel = uint8

// fifoCap bounds the pixel queue: the refill threshold plus one
// fetch batch of 8 pixels.
const fifoCap = 16

var (
	errFIFOOverflow = errors.New("ppu: pixel fifo overflow")
	errFIFOUnderrun = errors.New("ppu: pixel fifo underrun")
)

// FIFO is the bounded queue of pixels between the fetcher and the
// renderer.
type FIFO struct {
	buf  [fifoCap]Pixel
	out  int // index of the oldest queued pixel
	in   int // index the next pixel is stored at
	size int
}

// Push appends a pixel to the queue.
func (f *FIFO) Push(p Pixel) error {
	if f.size == fifoCap {
		return errFIFOOverflow
	}
	f.buf[f.in] = p
	f.in = (f.in + 1) % fifoCap
	f.size++
	return nil
}

// Pop removes and returns the oldest queued pixel.
func (f *FIFO) Pop() (Pixel, error) {
	if f.size == 0 {
		return 0, errFIFOUnderrun
	}
	p := f.buf[f.out]
	f.out = (f.out + 1) % fifoCap
	f.size--
	return p, nil
}

// Size returns the number of queued pixels.
func (f *FIFO) Size() int {
	return f.size
}

// Clear resets the queue to empty.
func (f *FIFO) Clear() {
	f.out = 0
	f.in = 0
	f.size = 0
}
