// Package savestate encodes complete machine snapshots into a versioned,
// checksummed binary envelope.
//
// Layout, little-endian:
//
//	magic "JBST" | version uint16 | payload length uint32 | payload | CRC-32 (IEEE) of payload
package savestate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/valerio/jeebie-core/jeebie/audio"
	"github.com/valerio/jeebie-core/jeebie/cpu"
	"github.com/valerio/jeebie-core/jeebie/interrupt"
	"github.com/valerio/jeebie-core/jeebie/memory"
	"github.com/valerio/jeebie-core/jeebie/serial"
	"github.com/valerio/jeebie-core/jeebie/video"
)

const (
	Version = 1

	magic      = "JBST"
	headerSize = len(magic) + 2 + 4
	crcSize    = 4
	maxRAMSize = 128 * 1024
)

var (
	ErrBadMagic           = errors.New("savestate: bad magic")
	ErrUnsupportedVersion = errors.New("savestate: unsupported version")
	ErrLength             = errors.New("savestate: truncated or oversized data")
	ErrChecksum           = errors.New("savestate: checksum mismatch")
	ErrCartridgeMismatch  = errors.New("savestate: state belongs to a different cartridge")
)

// Snapshot is everything needed to resume a machine exactly where it was.
type Snapshot struct {
	CartridgeCRC uint32
	CPU          cpu.State
	Interrupts   interrupt.Snapshot
	Timer        memory.TimerState
	Serial       serial.State
	Joypad       memory.JoypadState
	MBC          memory.MBCState
	RAM          []byte
	Memory       [0x10000]byte
	PPU          video.State
	APU          audio.State
}

// fixed-size sections, in payload order
func (s *Snapshot) head() []any {
	return []any{&s.CartridgeCRC, &s.CPU, &s.Interrupts, &s.Timer, &s.Serial, &s.Joypad, &s.MBC}
}

func (s *Snapshot) tail() []any {
	return []any{&s.Memory, &s.PPU, &s.APU}
}

// Encode serialises s into the envelope.
func Encode(s *Snapshot) ([]byte, error) {
	if len(s.RAM) > maxRAMSize {
		return nil, fmt.Errorf("%w: %d bytes of cartridge RAM", ErrLength, len(s.RAM))
	}

	var payload bytes.Buffer
	for _, section := range s.head() {
		if err := binary.Write(&payload, binary.LittleEndian, section); err != nil {
			return nil, fmt.Errorf("savestate: encode: %w", err)
		}
	}
	if err := binary.Write(&payload, binary.LittleEndian, uint32(len(s.RAM))); err != nil {
		return nil, fmt.Errorf("savestate: encode: %w", err)
	}
	payload.Write(s.RAM)
	for _, section := range s.tail() {
		if err := binary.Write(&payload, binary.LittleEndian, section); err != nil {
			return nil, fmt.Errorf("savestate: encode: %w", err)
		}
	}

	out := make([]byte, 0, headerSize+payload.Len()+crcSize)
	out = append(out, magic...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = binary.LittleEndian.AppendUint32(out, uint32(payload.Len()))
	out = append(out, payload.Bytes()...)
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(payload.Bytes()))
	return out, nil
}

// Decode validates the envelope and decodes the whole payload. Nothing is
// returned unless every check passes.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < headerSize+crcSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrLength, len(data))
	}
	if string(data[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	size := int(binary.LittleEndian.Uint32(data[6:10]))
	if size != len(data)-headerSize-crcSize {
		return nil, fmt.Errorf("%w: payload declares %d bytes, has %d", ErrLength, size, len(data)-headerSize-crcSize)
	}
	payload := data[headerSize : headerSize+size]
	if crc32.ChecksumIEEE(payload) != binary.LittleEndian.Uint32(data[headerSize+size:]) {
		return nil, ErrChecksum
	}

	s := &Snapshot{}
	r := bytes.NewReader(payload)
	for _, section := range s.head() {
		if err := binary.Read(r, binary.LittleEndian, section); err != nil {
			return nil, lengthError(err)
		}
	}

	var ramSize uint32
	if err := binary.Read(r, binary.LittleEndian, &ramSize); err != nil {
		return nil, lengthError(err)
	}
	if ramSize > maxRAMSize || int(ramSize) > r.Len() {
		return nil, fmt.Errorf("%w: cartridge RAM of %d bytes", ErrLength, ramSize)
	}
	if ramSize > 0 {
		s.RAM = make([]byte, ramSize)
		if _, err := io.ReadFull(r, s.RAM); err != nil {
			return nil, lengthError(err)
		}
	}

	for _, section := range s.tail() {
		if err := binary.Read(r, binary.LittleEndian, section); err != nil {
			return nil, lengthError(err)
		}
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrLength, r.Len())
	}
	return s, nil
}

func lengthError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrLength, err)
	}
	return fmt.Errorf("savestate: decode: %w", err)
}
