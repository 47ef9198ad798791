// Package timer provides the divider/timer controller of the
// emulated machine. The controller is advanced once per bus cycle
// and increments the timer counter on falling edges of a tap bit of
// the divider, with the hardware's delayed overflow behaviour.
//
// There is exactly one Controller per machine; it is constructed at
// machine initialisation and passed by reference to every component
// that needs it.
package timer

import (
	"github.com/pixelmoss/dotmatrix/internal/bus"
	"github.com/pixelmoss/dotmatrix/internal/interrupt"
	"github.com/pixelmoss/dotmatrix/internal/types"
)

// bits maps the TAC frequency-select field to the divider tap bit.
// The selected bit gives effective periods of 1024, 16, 64 and 256
// controller invocations.
var bits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is the divider/timer controller.
type Controller struct {
	div     uint16 // 16-bit divider counter, high byte mirrored into DIV
	lastBit bool   // last observed tap output, for edge detection

	// delayed overflow sequence: 4 invocations after TIMA wraps, the
	// counter is reloaded from TMA and the timer interrupt raised.
	// Either half can be cancelled by an intervening TIMA write.
	overflow           bool
	ticksSinceOverflow uint8
	reload             bool
	raise              bool

	tima    uint8
	tma     uint8
	tac     uint8
	enabled bool
	tapBit  uint16

	b   *bus.Bus
	irq *interrupt.Service
}

// NewController returns a new Controller with its registers attached
// to the bus.
func NewController(b *bus.Bus, irq *interrupt.Service) *Controller {
	c := &Controller{
		b:      b,
		irq:    irq,
		tapBit: bits[0],
		tac:    0xF8,
	}

	b.RegisterHardware(types.DIV,
		func(_ uint16, _ uint8) {
			// any write resets the whole internal counter
			c.div = 0
			c.b.SetRaw(types.DIV, 0)
		}, func(_ uint16) uint8 {
			return uint8(c.div >> 8)
		},
	)
	b.RegisterHardware(types.TIMA,
		func(_ uint16, v uint8) {
			c.tima = v
			if c.overflow {
				// a write during the pending window always cancels
				// the interrupt, and cancels the reload too when it
				// lands before the third invocation
				c.raise = false
				if c.ticksSinceOverflow < 3 {
					c.reload = false
				}
			}
		}, func(_ uint16) uint8 {
			return c.tima
		},
	)
	b.RegisterHardware(types.TMA,
		func(_ uint16, v uint8) {
			c.tma = v
		}, func(_ uint16) uint8 {
			return c.tma
		},
	)
	b.RegisterHardware(types.TAC,
		func(_ uint16, v uint8) {
			c.tac = v & 0x7
			c.tapBit = bits[v&0b11]
			c.enabled = v&types.Bit2 == types.Bit2
		}, func(_ uint16) uint8 {
			return c.tac | 0xF8
		},
	)

	return c
}

// Tick advances the controller by one bus cycle.
func (c *Controller) Tick() {
	c.div++
	c.b.SetRaw(types.DIV, uint8(c.div>>8))

	// advance a pending overflow sequence before edge detection so
	// the arming invocation itself does not count towards the delay
	if c.overflow {
		c.ticksSinceOverflow++
		if c.ticksSinceOverflow == 4 {
			if c.reload {
				c.tima = c.tma
			}
			if c.raise {
				c.irq.Request(interrupt.TimerFlag)
			}
			c.overflow = false
		}
	}

	// the tap is the timer-enable bit gated onto the selected
	// divider bit
	newBit := c.enabled && c.div&c.tapBit != 0

	if c.lastBit && !newBit && !c.overflow {
		c.tima++
		if c.tima == 0 {
			c.overflow = true
			c.ticksSinceOverflow = 0
			c.reload = true
			c.raise = true
		}
	}
	c.lastBit = newBit
}

// Div returns the internal 16-bit divider counter.
func (c *Controller) Div() uint16 {
	return c.div
}
