package image

// Blank imports register additional decoders with the standard image
// package so imaging.Open (and image.Decode generally) can handle the
// full set of formats RendererDispatch routes here (spec.md §4.6):
// jpeg/png/gif ship in the standard library and are already wired in by
// disintegration/imaging; bmp, tiff, and webp need these extra decoders.
import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)
