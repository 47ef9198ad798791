// Package display defines the contract between the emulator core and
// a presentation layer. The core never draws anything itself: at each
// frame boundary it hands a completed pixel buffer to whichever Driver
// is attached. A Driver implementation may run on its own thread; the
// buffer it receives is never mutated after delivery.
package display

const (
	// Width is the visible viewport width in pixels.
	Width = 160
	// Height is the visible viewport height in pixels.
	Height = 144
)

// Driver consumes completed frames. Frame receives a Height×Width
// buffer of 2-bit colour indices (0..3), one entry per visible pixel.
type Driver interface {
	Frame(buffer [Height][Width]uint8)
}
