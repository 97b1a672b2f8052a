package video

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

const (
	mapViewSize    = 256
	sheetTilesWide = 16
	sheetTiles     = 384
)

// BackgroundMap renders a full 32x32 tile map (256x256) through BGP, using the
// current tile data addressing mode. selectHigh picks the map at 0x9C00.
func (g *GPU) BackgroundMap(selectHigh bool) *FrameBuffer {
	fb := NewFrameBuffer(mapViewSize, mapViewSize)
	mapBase := addr.TileMap0
	if selectHigh {
		mapBase = addr.TileMap1
	}
	unsigned := bit.IsSet(bgWindowTileDataSelect, g.lcdc)

	for ty := range tileMapWidth {
		for tx := range tileMapWidth {
			number := g.bus.Read(mapBase + uint16(ty*tileMapWidth+tx))
			tile := FetchTile(g.bus, tileDataAddress(unsigned, number))
			g.blitTile(fb, &tile, tx*8, ty*8)
		}
	}
	return fb
}

// TileSheet renders all 384 tiles of VRAM in a 16x24 grid (128x192).
func (g *GPU) TileSheet() *FrameBuffer {
	fb := NewFrameBuffer(sheetTilesWide*8, sheetTiles/sheetTilesWide*8)
	for i := range sheetTiles {
		tile := FetchTile(g.bus, addr.TileData0+uint16(i*tileBytes))
		tile.Index = i
		g.blitTile(fb, &tile, (i%sheetTilesWide)*8, (i/sheetTilesWide)*8)
	}
	return fb
}

func (g *GPU) blitTile(fb *FrameBuffer, tile *Tile, originX, originY int) {
	for y := range 8 {
		for x := range 8 {
			fb.SetPixel(originX+x, originY+y, applyPalette(g.bgp, tile.GetPixel(x, y)))
		}
	}
}
