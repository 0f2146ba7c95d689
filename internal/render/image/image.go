// Package image implements the ImageRenderer component (spec.md §4.8):
// decode a standard raster image, fit it to a square canvas preserving
// aspect ratio, and encode the result as PNG.
package image

import (
	"fmt"
	stdimage "image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/asseterr"
	"github.com/renzora/assetcore/internal/render/placeholder"
)

// backgroundGray is the opaque light-gray canvas color assets are
// letterboxed onto, matching the neutral background used by the other
// renderers.
var backgroundGray = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}

// Render decodes srcPath, fits it within a size x size square using
// Lanczos3 resampling, composes it centered onto an opaque light-gray
// background, and writes the result to dstPath as PNG.
//
// A decode failure never propagates as an error: the renderer falls back
// to a synthetic placeholder badge derived from the file's extension, per
// spec.md §4.8's "this placeholder is always successful barring disk I/O
// failure".
func Render(srcPath, dstPath string, size int) error {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		decodeErr := fmt.Errorf("image: decoding %s: %w: %w", srcPath, asseterr.DecodeError, err)
		log.Warn().Err(decodeErr).Msg("image: decode failed, falling back to placeholder")
		return placeholder.Render(srcPath, dstPath, size)
	}

	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, backgroundGray)
	composed := imaging.PasteCenter(canvas, fitted)

	return imaging.Save(composed, dstPath)
}

// decodeBounds is used by callers that only need an image's dimensions
// without paying for a full decode+resize (e.g. tests asserting output
// size).
func decodeBounds(path string) (stdimage.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return stdimage.Rectangle{}, err
	}
	defer f.Close()
	cfg, _, err := stdimage.DecodeConfig(f)
	if err != nil {
		return stdimage.Rectangle{}, err
	}
	return stdimage.Rect(0, 0, cfg.Width, cfg.Height), nil
}
