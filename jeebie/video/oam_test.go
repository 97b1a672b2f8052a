package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/memory"
)

func TestOAMDecode(t *testing.T) {
	mmu := memory.New()
	oam := NewOAM(mmu)

	mmu.Write(addr.OAMStart, 50+16)
	mmu.Write(addr.OAMStart+1, 80+8)
	mmu.Write(addr.OAMStart+2, 0x42)
	mmu.Write(addr.OAMStart+3, 0xE0) // flip X, flip Y, behind BG

	mmu.Write(addr.OAMStart+4, 100+16)
	mmu.Write(addr.OAMStart+5, 20+8)
	mmu.Write(addr.OAMStart+6, 0x10)
	mmu.Write(addr.OAMStart+7, 0x10) // OBP1

	s0 := oam.Sprite(0, 8)
	require.NotNil(t, s0)
	assert.Equal(t, 50, s0.Y)
	assert.Equal(t, 80, s0.X)
	assert.Equal(t, uint8(0x42), s0.TileIndex)
	assert.True(t, s0.FlipX)
	assert.True(t, s0.FlipY)
	assert.True(t, s0.BehindBG)
	assert.False(t, s0.PaletteOBP1)

	s1 := oam.Sprite(1, 16)
	require.NotNil(t, s1)
	assert.Equal(t, 100, s1.Y)
	assert.Equal(t, 20, s1.X)
	assert.Equal(t, 16, s1.Height)
	assert.Equal(t, 1, s1.OAMIndex)
	assert.False(t, s1.FlipX)
	assert.False(t, s1.FlipY)
	assert.False(t, s1.BehindBG)
	assert.True(t, s1.PaletteOBP1)
}

func TestOAMSpriteOutOfRange(t *testing.T) {
	oam := NewOAM(memory.New())
	assert.Nil(t, oam.Sprite(-1, 8))
	assert.Nil(t, oam.Sprite(40, 8))
}

func TestOAMNegativePosition(t *testing.T) {
	mmu := memory.New()
	oam := NewOAM(mmu)
	mmu.Write(addr.OAMStart, 10) // partially above the screen
	mmu.Write(addr.OAMStart+1, 3)

	s := oam.Sprite(0, 8)
	assert.Equal(t, -6, s.Y)
	assert.Equal(t, -5, s.X)
	assert.True(t, s.OnLine(0))
	assert.True(t, s.OnLine(1))
	assert.False(t, s.OnLine(2))
}

func TestSpritesForLine(t *testing.T) {
	testCases := []struct {
		desc   string
		line   int
		height int
		want   []int
	}{
		{desc: "before any sprite", line: 5, height: 8, want: nil},
		{desc: "first row", line: 10, height: 8, want: []int{0}},
		{desc: "overlap", line: 17, height: 8, want: []int{0, 1}},
		{desc: "last row", line: 22, height: 8, want: []int{1}},
		{desc: "past the end", line: 23, height: 8, want: nil},
		{desc: "tall sprites reach further", line: 23, height: 16, want: []int{0, 1}},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			mmu := memory.New()
			oam := NewOAM(mmu)
			mmu.Write(addr.OAMStart, 10+16)
			mmu.Write(addr.OAMStart+1, 20+8)
			mmu.Write(addr.OAMStart+4, 15+16)
			mmu.Write(addr.OAMStart+5, 30+8)
			// everything else sits at Y=-16, never on screen

			var got []int
			for _, s := range oam.SpritesForLine(tC.line, tC.height) {
				got = append(got, s.OAMIndex)
			}
			assert.Equal(t, tC.want, got)
		})
	}
}

func TestSpritesForLineLimitAndOrder(t *testing.T) {
	mmu := memory.New()
	oam := NewOAM(mmu)
	// 12 sprites on line 0, X decreasing with the OAM index
	for i := range 12 {
		base := addr.OAMStart + uint16(i*4)
		mmu.Write(base, 16)
		mmu.Write(base+1, uint8(8+100-i*5))
	}

	sprites := oam.SpritesForLine(0, 8)
	require.Len(t, sprites, maxSpritesOnLine)

	// only the first 10 in OAM order are picked, then sorted by X
	for i, s := range sprites {
		assert.Equal(t, 9-i, s.OAMIndex)
	}
}

func TestOAMAll(t *testing.T) {
	mmu := memory.New()
	oam := NewOAM(mmu)
	mmu.Write(addr.OAMStart+39*4+2, 0x77)

	all := oam.All(8)
	require.Len(t, all, oamEntries)
	assert.Equal(t, uint8(0x77), all[39].TileIndex)
	assert.Equal(t, 39, all[39].OAMIndex)
}
