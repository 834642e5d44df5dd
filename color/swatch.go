package color

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"os"
)

// SaveSwatchPNG writes a solid-fill PNG of the given sRGB color, the
// same open-file/encode/close pattern the teacher uses for its
// grayscale image output (imageFuncs.go), applied here to a filter's
// apparent color instead of a diffraction frame.
func SaveSwatchPNG(filename string, c RGB, widthPx, heightPx int) (err error) {
	if widthPx <= 0 || heightPx <= 0 {
		return fmt.Errorf("color: swatch dimensions must be positive")
	}

	fill := stdcolor.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: 255,
	}

	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	for y := 0; y < heightPx; y++ {
		for x := 0; x < widthPx; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
