package savestate

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/cpu"
)

func sampleSnapshot() *Snapshot {
	s := &Snapshot{CartridgeCRC: 0xDEADBEEF}
	s.CPU = cpu.State{Registers: cpu.Registers{A: 0x01, F: 0xB0, SP: 0xFFFE, PC: 0x0150}, EIDelay: 1, Cycles: 123456}
	s.Interrupts.IME = true
	s.Interrupts.Enable = 0x1F
	s.Timer.Counter = 0xABCC
	s.Serial.Countdown = -1
	s.MBC.ROMBank = 3
	s.RAM = []byte{1, 2, 3, 4}
	s.Memory[0xC000] = 0x42
	s.PPU.LY = 90
	s.PPU.Pixels[100] = 3
	s.APU.Enabled = true
	s.APU.FrameCycles = 4000
	return s
}

func TestRoundTrip(t *testing.T) {
	s := sampleSnapshot()
	data, err := Encode(s)
	require.NoError(t, err)

	assert.Equal(t, "JBST", string(data[:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[4:6]))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestRoundTripWithoutRAM(t *testing.T) {
	s := sampleSnapshot()
	s.RAM = nil
	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Nil(t, got.RAM)
}

// reseal recomputes the trailing checksum after tampering with the payload.
func reseal(data []byte) {
	payload := data[headerSize : len(data)-crcSize]
	binary.LittleEndian.PutUint32(data[len(data)-crcSize:], crc32.ChecksumIEEE(payload))
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Encode(sampleSnapshot())
	require.NoError(t, err)

	testCases := []struct {
		desc   string
		mutate func([]byte) []byte
		want   error
	}{
		{desc: "empty", mutate: func([]byte) []byte { return nil }, want: ErrLength},
		{desc: "bad magic", mutate: func(b []byte) []byte { b[0] = 'X'; return b }, want: ErrBadMagic},
		{desc: "future version", mutate: func(b []byte) []byte { b[4] = 2; return b }, want: ErrUnsupportedVersion},
		{desc: "truncated", mutate: func(b []byte) []byte { return b[:len(b)-10] }, want: ErrLength},
		{desc: "extra bytes", mutate: func(b []byte) []byte { return append(b, 0) }, want: ErrLength},
		{desc: "flipped payload bit", mutate: func(b []byte) []byte { b[headerSize+20] ^= 1; return b }, want: ErrChecksum},
		{desc: "flipped checksum", mutate: func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }, want: ErrChecksum},
		{
			desc: "RAM length past the payload",
			mutate: func(b []byte) []byte {
				s := sampleSnapshot()
				offset := headerSize + binary.Size(s.CartridgeCRC) + binary.Size(s.CPU) + binary.Size(s.Interrupts) +
					binary.Size(s.Timer) + binary.Size(s.Serial) + binary.Size(s.Joypad) + binary.Size(s.MBC)
				binary.LittleEndian.PutUint32(b[offset:], 0x10000000)
				reseal(b)
				return b
			},
			want: ErrLength,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			data := tC.mutate(append([]byte(nil), valid...))
			got, err := Decode(data)
			assert.ErrorIs(t, err, tC.want)
			assert.Nil(t, got)
		})
	}
}

func TestEncodeRejectsOversizedRAM(t *testing.T) {
	s := sampleSnapshot()
	s.RAM = make([]byte, maxRAMSize+1)
	_, err := Encode(s)
	assert.ErrorIs(t, err, ErrLength)
}
