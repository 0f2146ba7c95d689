package fingerprint

import (
	"image"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/classify"
)

// ContentHash populates the FileMetadata.Hash field out-of-band (spec.md
// §9: "a per-file content hash exists... but is not required by the
// validator; an implementation may populate it out-of-band"). For image
// assets it uses a perceptual hash (cheap near-duplicate detection across
// re-exports/re-compressions); for everything else it falls back to a
// SHA-256 of the file bytes (an image that fails to decode gets the SHA-256
// too). Failure to read the file is reported back rather than silently
// empty, since this path runs outside
// the validator's fast path and callers may want to skip it on error.
func ContentHash(absPath string) (string, error) {
	if classify.FileType(absPath) == "image" {
		if h, err := perceptualHash(absPath); err == nil {
			return h, nil
		}
		// Fall through to a content hash if decoding failed (e.g. SVG,
		// or a format the standard image package doesn't register).
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return HashContent(data), nil
}

func perceptualHash(absPath string) (string, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		log.Warn().Err(err).Str("path", absPath).Msg("fingerprint: perceptual hash failed")
		return "", err
	}
	return hash.ToString(), nil
}
