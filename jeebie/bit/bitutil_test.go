package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineAndSplit(t *testing.T) {
	testCases := []struct {
		desc      string
		high, low uint8
		word      uint16
	}{
		{desc: "mixed", high: 0xAB, low: 0xCD, word: 0xABCD},
		{desc: "zero", high: 0x00, low: 0x00, word: 0x0000},
		{desc: "all ones", high: 0xFF, low: 0xFF, word: 0xFFFF},
		{desc: "boot sp", high: 0xFF, low: 0xFE, word: 0xFFFE},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.word, Combine(tC.high, tC.low))

			high, low := Split(tC.word)
			assert.Equal(t, tC.high, high)
			assert.Equal(t, tC.low, low)
			assert.Equal(t, tC.high, High(tC.word))
			assert.Equal(t, tC.low, Low(tC.word))
		})
	}
}

func TestBitManipulation(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		v := Set(i, 0)
		assert.True(t, IsSet(i, v))
		assert.Equal(t, uint8(1), Value(i, v))
		assert.Equal(t, uint8(0), Reset(i, v))
		assert.Equal(t, v, SetTo(i, 0, true))
		assert.Equal(t, uint8(0xFF)&^v, SetTo(i, 0xFF, false))
	}

	assert.True(t, IsSet16(15, 0x8000))
	assert.False(t, IsSet16(0, 0x8000))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint8(0b101), ExtractBits(0b11010110, 6, 4))
	assert.Equal(t, uint8(0b11), ExtractBits(0b11000000, 7, 6))
	assert.Equal(t, uint8(0xD6), ExtractBits(0xD6, 7, 0))
}

func TestFromBool(t *testing.T) {
	assert.Equal(t, uint8(1), FromBool(true))
	assert.Equal(t, uint8(0), FromBool(false))
}
