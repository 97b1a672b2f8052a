package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/memory"
)

func TestTileRowPixels(t *testing.T) {
	tests := []struct {
		name     string
		low      byte
		high     byte
		pixel    int
		expected int
	}{
		{"both planes", 0xFF, 0xFF, 0, 3},
		{"low plane only", 0xFF, 0x00, 0, 1},
		{"high plane only", 0x00, 0xFF, 0, 2},
		{"no bits", 0x00, 0x00, 0, 0},
		{"checkered pos 0", 0xAA, 0x00, 0, 1},
		{"checkered pos 1", 0xAA, 0x00, 1, 0},
		{"rightmost pixel", 0x01, 0x01, 7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := TileRow{Low: tt.low, High: tt.high}
			assert.Equal(t, tt.expected, row.GetPixel(tt.pixel))
			assert.Equal(t, tt.expected, row.GetPixelFlipped(7-tt.pixel))
		})
	}
}

func TestTileRowExample(t *testing.T) {
	row := TileRow{Low: 0x3C, High: 0x7E}
	var got []int
	for x := range 8 {
		got = append(got, row.GetPixel(x))
	}
	assert.Equal(t, []int{0, 2, 3, 3, 3, 3, 2, 0}, got)
}

func TestFetchTile(t *testing.T) {
	mmu := memory.New()
	for i := range uint16(16) {
		mmu.Write(addr.TileData0+i, uint8(i))
	}

	tile := FetchTile(mmu, addr.TileData0)
	assert.Equal(t, TileRow{Low: 0, High: 1}, tile.Rows[0])
	assert.Equal(t, TileRow{Low: 14, High: 15}, tile.Rows[7])
	assert.Equal(t, 0, tile.GetPixel(-1, 0))
	assert.Equal(t, 0, tile.GetPixel(0, 8))
}

func TestTileDataAddress(t *testing.T) {
	testCases := []struct {
		desc     string
		unsigned bool
		number   uint8
		want     uint16
	}{
		{desc: "unsigned 0", unsigned: true, number: 0, want: 0x8000},
		{desc: "unsigned 128", unsigned: true, number: 0x80, want: 0x8800},
		{desc: "unsigned 255", unsigned: true, number: 0xFF, want: 0x8FF0},
		{desc: "signed 0", number: 0, want: 0x9000},
		{desc: "signed 127", number: 0x7F, want: 0x97F0},
		{desc: "signed -128", number: 0x80, want: 0x8800},
		{desc: "signed -1", number: 0xFF, want: 0x8FF0},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.want, tileDataAddress(tC.unsigned, tC.number))
		})
	}
}

func TestPaletteMapping(t *testing.T) {
	tests := []struct {
		name     string
		palette  byte
		color    int
		expected Shade
	}{
		{"0xE4, color 0", 0xE4, 0, Lightest},
		{"0xE4, color 1", 0xE4, 1, Light},
		{"0xE4, color 2", 0xE4, 2, Dark},
		{"0xE4, color 3", 0xE4, 3, Darkest},
		{"0x1B, color 0", 0x1B, 0, Darkest},
		{"0x1B, color 1", 0x1B, 1, Dark},
		{"0x1B, color 2", 0x1B, 2, Light},
		{"0x1B, color 3", 0x1B, 3, Lightest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, applyPalette(tt.palette, tt.color))
		})
	}
}

func TestShadeColor(t *testing.T) {
	assert.Equal(t, WhiteColor, Lightest.Color())
	assert.Equal(t, LightGreyColor, Light.Color())
	assert.Equal(t, DarkGreyColor, Dark.Color())
	assert.Equal(t, BlackColor, Darkest.Color())
	assert.Equal(t, "darkest", Darkest.String())

	fb := NewFrameBuffer(2, 1)
	fb.SetPixel(1, 0, Darkest)
	assert.Equal(t, []uint32{uint32(WhiteColor), uint32(BlackColor)}, fb.ToColors())
}
