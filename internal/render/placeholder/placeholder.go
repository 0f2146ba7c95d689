// Package placeholder implements the PlaceholderRenderer component
// (spec.md §4.9): a synthetic PNG for assets with no real decoder
// (HDR/EXR, GPU-compressed textures) and the universal fallback
// RendererDispatch reaches for when every other renderer fails.
package placeholder

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var hdrExtensions = map[string]bool{".hdr": true, ".exr": true}

// blockSize gives the logical compression block edge length (in output
// pixels) drawn for each GPU-compressed texture format, so the grid at
// least hints at the format's real block structure.
var blockSize = map[string]int{
	".dds":  4,
	".ktx":  4,
	".ktx2": 4,
	".astc": 6,
	".pvr":  8,
	".etc1": 4,
	".etc2": 4,
	".pkm":  4,
}

// Render synthesizes a size x size PNG at dstPath whose appearance is
// derived from srcPath's extension: a gradient sky with a simulated sun
// for HDR/EXR assets, a block-grid pattern for GPU-compressed textures,
// or a plain framed icon for anything else (including images/models
// falling back here after their own renderer failed). A format badge is
// always drawn in the bottom-right corner.
func Render(srcPath, dstPath string, size int) error {
	ext := strings.ToLower(filepath.Ext(srcPath))

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	switch {
	case hdrExtensions[ext]:
		drawSkyGradient(img, size)
	case blockSize[ext] > 0:
		drawBlockGrid(img, size, blockSize[ext])
	default:
		drawFramedIcon(img, size)
	}

	drawBadge(img, size, badgeText(ext))

	return writePNG(img, dstPath)
}

func badgeText(ext string) string {
	t := strings.ToUpper(strings.TrimPrefix(ext, "."))
	if t == "" {
		t = "?"
	}
	if len(t) > 5 {
		t = t[:5]
	}
	return t
}

// drawSkyGradient paints a vertical sky gradient (horizon light, zenith
// darker blue) with a simulated sun disc, approximating the look of an
// equirectangular HDR environment map at a glance.
func drawSkyGradient(img *image.NRGBA, size int) {
	zenith := color.NRGBA{R: 0x1a, G: 0x3a, B: 0x6b, A: 0xff}
	horizon := color.NRGBA{R: 0xd8, G: 0xe8, B: 0xf5, A: 0xff}

	for y := 0; y < size; y++ {
		t := float64(y) / float64(size)
		c := lerp(zenith, horizon, t)
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	sunX, sunY := float64(size)*0.72, float64(size)*0.28
	sunRadius := float64(size) * 0.08
	sun := color.NRGBA{R: 0xff, G: 0xf2, B: 0xc2, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-sunX, float64(y)-sunY
			if math.Hypot(dx, dy) <= sunRadius {
				img.SetNRGBA(x, y, sun)
			}
		}
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 0xff}
}

// drawBlockGrid paints a checkerboard of block x block cells, evoking
// the fixed-size compression blocks of GPU texture formats.
func drawBlockGrid(img *image.NRGBA, size, block int) {
	light := color.NRGBA{R: 0x3a, G: 0x3a, B: 0x42, A: 0xff}
	dark := color.NRGBA{R: 0x26, G: 0x26, B: 0x2c, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			bx, by := x/block, y/block
			c := light
			if (bx+by)%2 == 0 {
				c = dark
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawFramedIcon paints a neutral background with an inset frame, the
// generic placeholder for any asset type without a more specific look.
func drawFramedIcon(img *image.NRGBA, size int) {
	bg := color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	frame := color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa8, A: 0xff}
	inset := size / 8
	r := image.Rect(inset, inset, size-inset, size-inset)
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, frame)
		img.SetNRGBA(x, r.Max.Y-1, frame)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, frame)
		img.SetNRGBA(r.Max.X-1, y, frame)
	}
}

// drawBadge stamps text in the bottom-right corner using the standard
// fixed-width basic font, scaled up by nearest-neighbor replication so it
// stays legible at typical thumbnail sizes.
func drawBadge(img *image.NRGBA, size int, text string) {
	scale := size / 256
	if scale < 1 {
		scale = 1
	}
	if scale > 4 {
		scale = 4
	}

	glyphWidth := 7 * scale
	textWidth := glyphWidth * len(text)
	margin := size / 32
	if margin < 2 {
		margin = 2
	}

	badgeH := 13*scale + margin
	badgeRect := image.Rect(size-textWidth-2*margin, size-badgeH-margin, size, size-margin)
	draw.Draw(img, badgeRect, &image.Uniform{C: color.NRGBA{A: 0xc0}}, image.Point{}, draw.Over)

	small := image.NewNRGBA(image.Rect(0, 0, textWidth/scale+2, 13))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: fixed.I(11)},
	}
	d.DrawString(text)

	dst := badgeRect.Min
	for y := 0; y < small.Bounds().Dy(); y++ {
		for x := 0; x < small.Bounds().Dx(); x++ {
			c := small.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					px, py := dst.X+margin+x*scale+sx, dst.Y+(margin/2)+y*scale+sy
					if (image.Point{X: px, Y: py}.In(img.Bounds())) {
						img.SetNRGBA(px, py, c)
					}
				}
			}
		}
	}
}

func writePNG(img image.Image, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	tmp := dstPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dstPath)
}
