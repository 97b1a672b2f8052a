package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/jeebie-core/jeebie/addr"
)

func TestTileSheet(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.BGP, defaultPalette)
	solidTile(mmu, 17, 3) // second row, second column
	solidTile(mmu, 383, 2)

	sheet := gpu.TileSheet()
	assert.Equal(t, 128, sheet.Width())
	assert.Equal(t, 192, sheet.Height())

	assert.Equal(t, Lightest, sheet.GetPixel(7, 7))
	assert.Equal(t, Darkest, sheet.GetPixel(8, 8))
	assert.Equal(t, Darkest, sheet.GetPixel(15, 15))
	assert.Equal(t, Lightest, sheet.GetPixel(16, 8))
	assert.Equal(t, Dark, sheet.GetPixel(127, 191))
}

func TestBackgroundMap(t *testing.T) {
	mmu, gpu := newTestGPU(t)
	mmu.Write(addr.LCDC, 0x91)
	mmu.Write(addr.BGP, defaultPalette)
	solidTile(mmu, 1, 3)
	mmu.Write(addr.TileMap1+33, 1) // tile (1, 1) of the high map

	high := gpu.BackgroundMap(true)
	assert.Equal(t, 256, high.Width())
	assert.Equal(t, Darkest, high.GetPixel(8, 8))
	assert.Equal(t, Darkest, high.GetPixel(15, 15))
	assert.Equal(t, Lightest, high.GetPixel(16, 8))

	low := gpu.BackgroundMap(false)
	for _, s := range low.ToSlice() {
		if !assert.Equal(t, Lightest, s) {
			break
		}
	}
}
