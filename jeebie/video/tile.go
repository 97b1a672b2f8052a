package video

import (
	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

const (
	tileBytes    = 16
	tileMapWidth = 32
)

// TileRow is one 8-pixel row of a tile, stored as two bit planes.
//
//	Low  (0x3C): 0 0 1 1 1 1 0 0
//	High (0x7E): 0 1 1 1 1 1 1 0
//	            -----------------
//	Colors:      0 2 3 3 3 3 2 0
//
// Bit 7 is the leftmost pixel. The low plane contributes 1 and the high plane 2.
//
// Reference: https://gbdev.io/pandocs/Tile_Data.html
type TileRow struct {
	Low  byte
	High byte
}

// GetPixel returns the colour index (0-3) of pixel x (0 is leftmost).
func (t TileRow) GetPixel(x int) int {
	return t.pixelAt(uint8(7 - x))
}

// GetPixelFlipped is GetPixel with the row mirrored horizontally.
func (t TileRow) GetPixelFlipped(x int) int {
	return t.pixelAt(uint8(x))
}

func (t TileRow) pixelAt(bitIndex uint8) int {
	return int(bit.Value(bitIndex, t.Low) | bit.Value(bitIndex, t.High)<<1)
}

// Tile is a full 8x8 pattern, 16 bytes in VRAM.
type Tile struct {
	Index int
	Rows  [8]TileRow
}

// GetPixel returns the colour index at (x, y), or 0 outside the tile.
func (t *Tile) GetPixel(x, y int) int {
	if y < 0 || y >= 8 || x < 0 || x >= 8 {
		return 0
	}
	return t.Rows[y].GetPixel(x)
}

// MemoryReader is the read side of the bus, enough to fetch tiles and sprites.
type MemoryReader interface {
	Read(address uint16) byte
}

// FetchTile reads the 16 bytes of a tile starting at base.
func FetchTile(memory MemoryReader, base uint16) Tile {
	var tile Tile
	for row := range 8 {
		tile.Rows[row] = fetchRow(memory, base, row)
	}
	return tile
}

func fetchRow(memory MemoryReader, base uint16, row int) TileRow {
	a := base + uint16(row*2)
	return TileRow{Low: memory.Read(a), High: memory.Read(a + 1)}
}

// tileDataAddress resolves a tile number from a map into its data address.
// Unsigned mode indexes from 0x8000, signed mode treats the number as int8
// relative to 0x9000.
func tileDataAddress(unsigned bool, tileNumber uint8) uint16 {
	if unsigned {
		return addr.TileData0 + uint16(tileNumber)*tileBytes
	}
	return uint16(int(addr.TileData2) + int(int8(tileNumber))*tileBytes)
}
