package video

import (
	"slices"

	"github.com/valerio/jeebie-core/jeebie/addr"
	"github.com/valerio/jeebie-core/jeebie/bit"
)

const (
	oamEntries       = 40
	maxSpritesOnLine = 10
	spriteYOffset    = 16
	spriteXOffset    = 8
)

// Sprite is one decoded OAM entry, with positions in screen coordinates.
// X and Y can be negative for sprites partially off the top or left edge.
type Sprite struct {
	Y         int
	X         int
	TileIndex uint8
	Flags     uint8
	OAMIndex  int
	Height    int

	PaletteOBP1 bool
	FlipX       bool
	FlipY       bool
	BehindBG    bool
}

func decodeSprite(raw [4]byte, index, height int) Sprite {
	s := Sprite{
		Y:         int(raw[0]) - spriteYOffset,
		X:         int(raw[1]) - spriteXOffset,
		TileIndex: raw[2],
		Flags:     raw[3],
		OAMIndex:  index,
		Height:    height,
	}
	s.PaletteOBP1 = bit.IsSet(4, s.Flags)
	s.FlipX = bit.IsSet(5, s.Flags)
	s.FlipY = bit.IsSet(6, s.Flags)
	s.BehindBG = bit.IsSet(7, s.Flags)
	return s
}

// OnLine reports whether the sprite covers scanline ly.
func (s *Sprite) OnLine(ly int) bool {
	return s.Y <= ly && ly < s.Y+s.Height
}

// tileRowAddress returns the address of the row of this sprite drawn on ly.
// 8x16 sprites ignore bit 0 of the tile index.
func (s *Sprite) tileRowAddress(ly int) uint16 {
	row := ly - s.Y
	if s.FlipY {
		row = s.Height - 1 - row
	}
	tile := s.TileIndex
	if s.Height == 16 {
		tile &= 0xFE
	}
	return addr.TileData0 + uint16(tile)*tileBytes + uint16(row*2)
}

// OAM decodes sprite attributes out of object attribute memory.
type OAM struct {
	bus        MemoryReader
	lineBuffer [maxSpritesOnLine]Sprite
}

func NewOAM(bus MemoryReader) *OAM {
	return &OAM{bus: bus}
}

func (o *OAM) read(index, height int) Sprite {
	base := addr.OAMStart + uint16(index*4)
	var raw [4]byte
	for i := range raw {
		raw[i] = o.bus.Read(base + uint16(i))
	}
	return decodeSprite(raw, index, height)
}

// SpritesForLine selects up to 10 sprites covering ly, scanning OAM in order.
// Sprites off the left or right edge still count toward the limit. The result
// is sorted by drawing priority: lower X first, then lower OAM index.
//
// The returned slice is reused by the next call.
//
// Reference: https://gbdev.io/pandocs/OAM.html#drawing-priority
func (o *OAM) SpritesForLine(ly, height int) []Sprite {
	sprites := o.lineBuffer[:0]
	for i := range oamEntries {
		s := o.read(i, height)
		if !s.OnLine(ly) {
			continue
		}
		sprites = append(sprites, s)
		if len(sprites) == maxSpritesOnLine {
			break
		}
	}

	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.OAMIndex - b.OAMIndex
	})
	return sprites
}

// Sprite returns entry index (0-39), or nil when out of range.
func (o *OAM) Sprite(index, height int) *Sprite {
	if index < 0 || index >= oamEntries {
		return nil
	}
	s := o.read(index, height)
	return &s
}

// All decodes every OAM entry.
func (o *OAM) All(height int) []Sprite {
	result := make([]Sprite, oamEntries)
	for i := range result {
		result[i] = o.read(i, height)
	}
	return result
}
