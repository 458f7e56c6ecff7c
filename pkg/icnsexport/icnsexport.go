// Package icnsexport extracts PNG renditions from an ICNS icon container.
package icnsexport

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jackmordaunt/icns/v2"
	"golang.org/x/image/draw"
)

// iconEdges is the standard macOS icon ladder. The exporter emits every
// edge not exceeding the decoded source.
var iconEdges = []int{16, 32, 64, 128, 256, 512, 1024}

// Exported records one written PNG.
type Exported struct {
	Path   string
	Width  int
	Height int
}

// Export decodes the ICNS file at path and writes its renditions into
// outDir: the largest embedded image as icon_largest.png plus a scaled
// icon_<N>x<N>.png for each standard edge up to the source size.
func Export(path, outDir string) ([]Exported, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := icns.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icns %s: %w", path, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	bounds := img.Bounds()
	var exported []Exported

	largest := filepath.Join(outDir, "icon_largest.png")
	if err := writePNG(largest, img); err != nil {
		return nil, err
	}
	exported = append(exported, Exported{Path: largest, Width: bounds.Dx(), Height: bounds.Dy()})

	for _, edge := range iconEdges {
		if edge >= bounds.Dx() || edge >= bounds.Dy() {
			continue
		}
		scaled := scale(img, edge, edge)
		out := filepath.Join(outDir, fmt.Sprintf("icon_%dx%d.png", edge, edge))
		if err := writePNG(out, scaled); err != nil {
			return exported, err
		}
		exported = append(exported, Exported{Path: out, Width: edge, Height: edge})
	}

	return exported, nil
}

func scale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
