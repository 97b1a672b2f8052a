package video

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// grayLevels maps each shade to the 8-bit grey used in screenshots.
var grayLevels = [4]uint8{
	Lightest: 0xFF,
	Light:    0xAA,
	Dark:     0x55,
	Darkest:  0x00,
}

// Image converts the framebuffer to a grayscale image.
func (fb *FrameBuffer) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetGray(x, y, color.Gray{Y: grayLevels[fb.GetPixel(x, y)&3]})
		}
	}
	return img
}

// ToGrayscale returns one byte per pixel, row-major, using the screenshot greys.
func (fb *FrameBuffer) ToGrayscale() []byte {
	out := make([]byte, len(fb.buffer))
	for i, s := range fb.buffer {
		out[i] = grayLevels[s&3]
	}
	return out
}

// WritePNG encodes the framebuffer as a grayscale PNG.
func WritePNG(w io.Writer, fb *FrameBuffer) error {
	return png.Encode(w, fb.Image())
}
