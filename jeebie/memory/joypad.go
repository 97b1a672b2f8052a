package memory

import "github.com/valerio/jeebie-core/jeebie/bit"

// JoypadKey is one of the eight DMG buttons.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

var joypadKeyNames = [...]string{"Right", "Left", "Up", "Down", "A", "B", "Select", "Start"}

func (k JoypadKey) String() string {
	if int(k) < len(joypadKeyNames) {
		return joypadKeyNames[k]
	}
	return "Unknown"
}

// Joypad models the P1 matrix. Line state is active low: a 0 bit is a pressed key.
type Joypad struct {
	buttons uint8
	dpad    uint8
	// selection bits 4-5 as written by the CPU
	selection uint8

	// InterruptHandler is called when a selected line goes from high to low.
	InterruptHandler func()
}

// JoypadState is the persisted form of a Joypad.
type JoypadState struct {
	Buttons   uint8
	Dpad      uint8
	Selection uint8
}

func NewJoypad() *Joypad {
	return &Joypad{
		buttons:   0x0F,
		dpad:      0x0F,
		selection: 0x30,
	}
}

// Read returns P1. Bit 4 low selects the d-pad, bit 5 low selects the buttons, both
// low ANDs the two groups, neither reads as all released. Bits 6-7 read as 1.
func (j *Joypad) Read() uint8 {
	lines := j.lines()
	return 0xC0 | j.selection | lines
}

func (j *Joypad) lines() uint8 {
	selectDpad := !bit.IsSet(4, j.selection)
	selectButtons := !bit.IsSet(5, j.selection)

	lines := uint8(0x0F)
	if selectDpad {
		lines &= j.dpad
	}
	if selectButtons {
		lines &= j.buttons
	}
	return lines
}

// Write updates the selection bits, the only writable part of P1.
func (j *Joypad) Write(value uint8) {
	j.update(func() { j.selection = value & 0x30 })
}

func (j *Joypad) Press(key JoypadKey) {
	j.update(func() { j.set(key, false) })
}

func (j *Joypad) Release(key JoypadKey) {
	j.update(func() { j.set(key, true) })
}

// update applies change and raises the interrupt on any 1->0 transition of the
// visible lines.
func (j *Joypad) update(change func()) {
	before := j.lines()
	change()
	after := j.lines()
	if before&^after != 0 && j.InterruptHandler != nil {
		j.InterruptHandler()
	}
}

func (j *Joypad) set(key JoypadKey, released bool) {
	switch {
	case key <= JoypadDown:
		j.dpad = bit.SetTo(uint8(key), j.dpad, released)
	case key <= JoypadStart:
		j.buttons = bit.SetTo(uint8(key-JoypadA), j.buttons, released)
	}
}

func (j *Joypad) Snapshot() JoypadState {
	return JoypadState{Buttons: j.buttons, Dpad: j.dpad, Selection: j.selection}
}

func (j *Joypad) Restore(s JoypadState) {
	j.buttons = s.Buttons & 0x0F
	j.dpad = s.Dpad & 0x0F
	j.selection = s.Selection & 0x30
}
