// Package serial emulates the link port with nothing connected on the other end.
// Outgoing bytes are captured and logged as text lines, which is how most test ROMs
// report their results.
package serial

import (
	"log/slog"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

// cycles needed to shift out one byte with the internal 8192 Hz clock
const transferCycles = 4096

// Port is the SB/SC register pair plus the transfer state machine.
type Port struct {
	irqHandler     func()
	sb, sc         byte
	transferActive bool
	countdown      int
	logger         *slog.Logger

	immediate bool
	// value shifted in from a disconnected peer
	defaultRX byte

	line   []byte
	output []byte
}

// State is the persisted part of a Port.
type State struct {
	SB, SC         uint8
	TransferActive bool
	Countdown      int32
}

type Option func(*Port)

// WithFixedTiming completes transfers after the DMG shift time instead of immediately.
func WithFixedTiming() Option { return func(p *Port) { p.immediate = false } }

// WithLogger sets the logger that receives completed text lines.
func WithLogger(l *slog.Logger) Option { return func(p *Port) { p.logger = l } }

// New creates a serial port. irq is called when a transfer completes and should request
// the Serial interrupt.
func New(irq func(), opts ...Option) *Port {
	p := &Port{
		irqHandler: irq,
		immediate:  true,
		defaultRX:  0xFF,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p
}

func (p *Port) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		p.sb = value
	case addr.SC:
		p.sc = value
		p.maybeStartTransfer()
	}
}

func (p *Port) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return p.sb
	case addr.SC:
		// bits 1-6 are unused on DMG
		return p.sc | 0x7E
	default:
		return 0xFF
	}
}

func (p *Port) Tick(cycles int) {
	if p.immediate || !p.transferActive {
		return
	}
	p.countdown -= cycles
	if p.countdown <= 0 {
		p.completeTransfer()
		p.countdown = 0
	}
}

func (p *Port) Reset() {
	p.sb = 0x00
	p.sc = 0x00
	p.transferActive = false
	p.countdown = 0
	p.line = p.line[:0]
	p.output = p.output[:0]
}

// Output returns every byte sent since the last Reset.
func (p *Port) Output() []byte {
	out := make([]byte, len(p.output))
	copy(out, p.output)
	return out
}

func (p *Port) Snapshot() State {
	return State{
		SB:             p.sb,
		SC:             p.sc,
		TransferActive: p.transferActive,
		Countdown:      int32(p.countdown),
	}
}

func (p *Port) Restore(s State) {
	p.sb = s.SB
	p.sc = s.SC
	p.transferActive = s.TransferActive
	p.countdown = int(s.Countdown)
}

func (p *Port) maybeStartTransfer() {
	if p.transferActive {
		return
	}
	// only the internal clock can drive a transfer without a peer
	if !bit.IsSet(7, p.sc) || !bit.IsSet(0, p.sc) {
		return
	}

	b := p.sb
	p.output = append(p.output, b)
	if b == 0 || b == '\n' || b == '\r' {
		if len(p.line) > 0 {
			p.logger.Info("serial", "line", string(p.line))
			p.line = p.line[:0]
		}
	} else {
		p.line = append(p.line, b)
	}

	if p.immediate {
		p.completeTransfer()
		return
	}

	p.transferActive = true
	p.countdown = transferCycles
}

func (p *Port) completeTransfer() {
	p.sb = p.defaultRX
	p.sc = bit.Reset(7, p.sc)
	p.transferActive = false
	if p.irqHandler != nil {
		p.irqHandler()
	}
}
