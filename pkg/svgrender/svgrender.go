// Package svgrender rasterizes SVG documents to PNG.
package svgrender

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Render rasterizes the SVG read from r at the given pixel size. A zero
// width or height falls back to the document's view box dimensions.
func Render(r io.Reader, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	if width <= 0 {
		width = int(icon.ViewBox.W)
	}
	if height <= 0 {
		height = int(icon.ViewBox.H)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg has no usable dimensions and none were given")
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return img, nil
}

// RenderFile rasterizes the SVG at inPath and writes a PNG to outPath.
func RenderFile(inPath, outPath string, width, height int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inPath, err)
	}
	defer in.Close()

	img, err := Render(in, width, height)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return out.Close()
}
