package video

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// Shade is one of the four DMG grey levels, after palette mapping.
type Shade uint8

const (
	Lightest Shade = iota
	Light
	Dark
	Darkest
)

// GBColor is an ARGB rendition of a Shade, for hosts that draw pixels.
type GBColor uint32

const (
	WhiteColor     GBColor = 0xFFFFFFFF
	LightGreyColor GBColor = 0xFF989898
	DarkGreyColor  GBColor = 0xFF4C4C4C
	BlackColor     GBColor = 0xFF000000
)

var shadeColors = [4]GBColor{WhiteColor, LightGreyColor, DarkGreyColor, BlackColor}

// Color maps the shade to its ARGB value.
func (s Shade) Color() GBColor {
	return shadeColors[s&3]
}

func (s Shade) String() string {
	switch s {
	case Lightest:
		return "lightest"
	case Light:
		return "light"
	case Dark:
		return "dark"
	case Darkest:
		return "darkest"
	}
	return "invalid"
}

// applyPalette maps a 2-bit colour index through a BGP/OBP register.
func applyPalette(palette uint8, colorIndex int) Shade {
	return Shade((palette >> (uint(colorIndex) * 2)) & 3)
}

// FrameBuffer holds shades in row-major order.
type FrameBuffer struct {
	width  int
	height int
	buffer []Shade
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]Shade, width*height),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

// GetPixel returns Lightest for coordinates outside the buffer.
func (fb *FrameBuffer) GetPixel(x, y int) Shade {
	if !fb.inBounds(x, y) {
		return Lightest
	}
	return fb.buffer[y*fb.width+x]
}

// SetPixel ignores coordinates outside the buffer.
func (fb *FrameBuffer) SetPixel(x, y int, s Shade) {
	if fb.inBounds(x, y) {
		fb.buffer[y*fb.width+x] = s
	}
}

// Clear fills the buffer with s.
func (fb *FrameBuffer) Clear(s Shade) {
	for i := range fb.buffer {
		fb.buffer[i] = s
	}
}

// ToSlice exposes the backing slice. Callers must not keep it across frames.
func (fb *FrameBuffer) ToSlice() []Shade {
	return fb.buffer
}

// ToColors converts the buffer to ARGB pixels.
func (fb *FrameBuffer) ToColors() []uint32 {
	out := make([]uint32, len(fb.buffer))
	for i, s := range fb.buffer {
		out[i] = uint32(s.Color())
	}
	return out
}
