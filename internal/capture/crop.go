package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fakeyudi/rapidreporter/internal/monitor"
)

// ErrCropOutsideBounds is returned when the scaled crop rectangle does not
// intersect the image at all.
var ErrCropOutsideBounds = errors.New("crop area is outside the image bounds")

// FileCropper implements Cropper against image files on disk. The cropped
// result is written as PNG next to the source, named
// <stem>-region-<millis>.png.
type FileCropper struct{}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop cuts the selection out of the image at path. The selection is in
// logical units; it is scaled by the device pixel ratio (floored at 1.0)
// and clamped to the physical image bounds before cutting.
func (FileCropper) Crop(ctx context.Context, path string, local monitor.RegionSelection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ratio := math.Max(local.DevicePixelRatio, 1.0)
	x := int(math.Max(math.Round(float64(local.X)*ratio), 0))
	y := int(math.Max(math.Round(float64(local.Y)*ratio), 0))
	w := int(math.Max(math.Round(float64(local.Width)*ratio), 1))
	h := int(math.Max(math.Round(float64(local.Height)*ratio), 1))

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	x2 := min(x+w, bounds.Dx())
	y2 := min(y+h, bounds.Dy())
	if x >= x2 || y >= y2 {
		return "", ErrCropOutsideBounds
	}

	rect := image.Rect(bounds.Min.X+x, bounds.Min.Y+y, bounds.Min.X+x2, bounds.Min.Y+y2)

	var cropped image.Image
	if si, ok := img.(subImager); ok {
		cropped = si.SubImage(rect)
	} else {
		rgba := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		for yy := 0; yy < rect.Dy(); yy++ {
			for xx := 0; xx < rect.Dx(); xx++ {
				rgba.Set(xx, yy, img.At(rect.Min.X+xx, rect.Min.Y+yy))
			}
		}
		cropped = rgba
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" {
		stem = "screenshot"
	}
	out := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("%s-region-%d.png", stem, time.Now().UnixMilli()))

	dst, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := png.Encode(dst, cropped); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return out, nil
}
