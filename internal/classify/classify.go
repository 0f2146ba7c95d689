// Package classify maps asset file extensions to the coarse file_type
// classification used throughout the cache and thumbnail pipeline, and to
// the per-type processing time estimate used when building a ProcessingPlan.
package classify

import (
	"path/filepath"
	"strings"
)

// fileTypes mirrors the extension table in the original cache validator
// (renzora/engine bridge/src/modules/project_cache_validator.rs
// get_file_type), extended with the ico/svg/wmv/jsx/tsx/xml/yaml/rst/ply
// entries from spec.md §6.
var fileTypes = map[string]string{
	"jpg": "image", "jpeg": "image", "png": "image", "webp": "image",
	"bmp": "image", "tga": "image", "tiff": "image", "ico": "image", "svg": "image",

	"hdr": "hdr_image", "exr": "hdr_image",

	"glb": "model", "gltf": "model", "obj": "model", "fbx": "model",
	"dae": "model", "3ds": "model", "blend": "model", "stl": "model", "ply": "model",

	"mp3": "audio", "wav": "audio", "ogg": "audio", "flac": "audio",
	"aac": "audio", "m4a": "audio",

	"mp4": "video", "avi": "video", "mov": "video", "mkv": "video",
	"webm": "video", "wmv": "video",

	"js": "script", "ts": "script", "jsx": "script", "tsx": "script",

	"json": "data", "xml": "data", "yaml": "data", "yml": "data",

	"txt": "document", "md": "document", "rst": "document",

	"ren": "renscript",
}

// processingSeconds gives the piecewise-constant per-file_type cost used by
// ProcessingPlan.estimated_processing_time (spec.md §3).
var processingSeconds = map[string]uint64{
	"image":     2,
	"hdr_image": 2,
	"model":     10,
	"audio":     3,
	"video":     8,
	"script":    1,
	"data":      1,
	"document":  1,
	"renscript": 1,
	"other":     1,
}

// glbExtensions, imageExtensions, and placeholderExtensions partition the
// RendererDispatch selection in spec.md §4.6. They intentionally overlap
// only where the spec's two tables overlap (they don't).
var glbExtensions = map[string]bool{
	"glb": true, "gltf": true, "obj": true, "fbx": true,
	"dae": true, "3ds": true, "blend": true, "stl": true, "ply": true,
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"tiff": true, "webp": true, "tga": true, "ico": true, "svg": true,
}

var placeholderExtensions = map[string]bool{
	"hdr": true, "exr": true, "pfm": true, "dds": true, "ktx": true,
	"ktx2": true, "astc": true, "pvr": true, "etc1": true, "etc2": true, "pkm": true,
}

// ext returns the lowercase extension of path without the leading dot.
func ext(path string) string {
	e := filepath.Ext(path)
	if e == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(e, "."))
}

// FileType returns the coarse file_type classification for path, or "other"
// if the extension is unrecognized.
func FileType(path string) string {
	if ft, ok := fileTypes[ext(path)]; ok {
		return ft
	}
	return "other"
}

// ProcessingSeconds returns the estimated per-file processing time in
// seconds for path, used by ProcessingPlan.estimate_processing_time.
func ProcessingSeconds(path string) uint64 {
	if s, ok := processingSeconds[FileType(path)]; ok {
		return s
	}
	return 1
}

// Generator names the RendererDispatch backend appropriate for path.
type Generator int

const (
	// GeneratorGlb renders 3D models (GPU or hosted-viewer strategy).
	GeneratorGlb Generator = iota
	// GeneratorImage decodes and resizes standard raster images.
	GeneratorImage
	// GeneratorPlaceholder synthesizes a stylized PNG for formats without
	// a real decoder.
	GeneratorPlaceholder
)

// GeneratorFor selects the RendererDispatch backend for path's extension,
// per spec.md §4.6 step 5. Anything not in the three tables still falls to
// the placeholder generator rather than failing outright.
func GeneratorFor(path string) Generator {
	e := ext(path)
	switch {
	case glbExtensions[e]:
		return GeneratorGlb
	case imageExtensions[e]:
		return GeneratorImage
	case placeholderExtensions[e]:
		return GeneratorPlaceholder
	default:
		return GeneratorPlaceholder
	}
}
