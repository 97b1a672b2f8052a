// Package interrupt holds the interrupt master enable flag and the IE/IF registers.
package interrupt

import "fmt"

// Source identifies one of the five interrupt lines, numbered by bit position in IE/IF.
// Lower numbers have higher priority.
type Source uint8

const (
	// VBlank fires when the PPU enters vertical blank.
	VBlank Source = iota
	// LCDStat fires on the rising edge of the STAT interrupt line.
	LCDStat
	// Timer fires when TIMA overflows.
	Timer
	// Serial fires when a serial transfer completes.
	Serial
	// Joypad fires when a selected input line goes low.
	Joypad
)

const (
	sourceCount = 5
	sourceMask  = 0x1F
	// IF reads back with the unused upper bits set.
	unusedFlagBits = 0xE0
)

var sourceNames = [sourceCount]string{"VBlank", "LCDStat", "Timer", "Serial", "Joypad"}

func (s Source) String() string {
	if s < sourceCount {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

// Mask returns the IE/IF bit for the source.
func (s Source) Mask() uint8 {
	return 1 << s
}

// Vector returns the address the CPU jumps to when servicing the source.
func (s Source) Vector() uint16 {
	return 0x40 + uint16(s)*8
}

// Controller arbitrates the interrupt lines.
type Controller struct {
	ime     bool
	enable  uint8
	request uint8
}

// Snapshot is a plain copy of the controller registers, also used for save states.
type Snapshot struct {
	IME     bool
	Enable  uint8
	Request uint8
}

func New() *Controller {
	return &Controller{}
}

func (c *Controller) IME() bool { return c.ime }

func (c *Controller) SetIME(enabled bool) { c.ime = enabled }

// Request raises the request bit for s.
func (c *Controller) Request(s Source) {
	c.request |= s.Mask()
}

// Clear lowers the request bit for s.
func (c *Controller) Clear(s Source) {
	c.request &^= s.Mask()
}

func (c *Controller) Requested(s Source) bool {
	return c.request&s.Mask() != 0
}

func (c *Controller) Enabled(s Source) bool {
	return c.enable&s.Mask() != 0
}

func (c *Controller) SetEnabled(s Source, enabled bool) {
	if enabled {
		c.enable |= s.Mask()
	} else {
		c.enable &^= s.Mask()
	}
}

// Pending reports whether any source is both enabled and requested, regardless of IME.
func (c *Controller) Pending() bool {
	return c.enable&c.request&sourceMask != 0
}

// Next returns the highest priority enabled and requested source.
func (c *Controller) Next() (Source, bool) {
	active := c.enable & c.request & sourceMask
	for s := VBlank; s < sourceCount; s++ {
		if active&s.Mask() != 0 {
			return s, true
		}
	}
	return 0, false
}

// Acknowledge starts servicing the highest priority pending source: IME is cleared along
// with that source's request bit. It does nothing when IME is off.
func (c *Controller) Acknowledge() (Source, bool) {
	if !c.ime {
		return 0, false
	}
	s, ok := c.Next()
	if !ok {
		return 0, false
	}
	c.ime = false
	c.Clear(s)
	return s, true
}

// ReadFlags returns IF as the CPU sees it.
func (c *Controller) ReadFlags() uint8 {
	return c.request | unusedFlagBits
}

func (c *Controller) WriteFlags(value uint8) {
	c.request = value & sourceMask
}

// ReadEnable returns IE. All eight bits are stored even though only five are used.
func (c *Controller) ReadEnable() uint8 {
	return c.enable
}

func (c *Controller) WriteEnable(value uint8) {
	c.enable = value
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{IME: c.ime, Enable: c.enable, Request: c.request}
}

func (c *Controller) Restore(s Snapshot) {
	c.ime = s.IME
	c.enable = s.Enable
	c.request = s.Request & sourceMask
}
