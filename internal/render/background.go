package render

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// LoadBackground reads an image file and scales it to canvas size with
// Catmull-Rom resampling.
func LoadBackground(path string, width, height int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// WriteGradientBackground synthesizes the default background: a dark blue
// vertical luminance ramp. The encoding follows the file extension, JPEG for
// .jpg/.jpeg and PNG otherwise.
func WriteGradientBackground(path string, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		v := uint8(30 + int(float64(y)/float64(height)*50))
		c := color.RGBA{R: v, G: v, B: v + 30, A: 255}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create background: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("encode background: %w", err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encode background: %w", err)
		}
	}
	return nil
}
