package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// SamplePNG returns a valid size x size PNG payload, useful as a stand-in
// source texture or as a pre-existing thumbnail fixture.
func SamplePNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode sample PNG: %v", err)
	}
	return buf.Bytes()
}

// SampleGLB returns a minimal glTF-binary container: the 12-byte header
// (magic "glTF", version 2, declared length) followed by an empty JSON
// chunk. It is not a renderable model, only a fixture with a plausible
// byte signature for classifier and fingerprint tests.
func SampleGLB() []byte {
	jsonChunk := []byte(`{"asset":{"version":"2.0"}}`)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}

	var buf bytes.Buffer
	buf.WriteString("glTF")
	writeUint32LE(&buf, 2)
	writeUint32LE(&buf, uint32(12+8+len(jsonChunk)))

	writeUint32LE(&buf, uint32(len(jsonChunk)))
	writeUint32LE(&buf, 0x4E4F534A) // "JSON"
	buf.Write(jsonChunk)

	return buf.Bytes()
}

func writeUint32LE(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

// WriteSampleProject populates a project directory with a representative
// asset tree: a texture, a model, and a scene script, returning the
// project's absolute root path.
func WriteSampleProject(t *testing.T, projectsDir, project string) string {
	t.Helper()
	root := filepath.Join(projectsDir, project)

	WriteBytes(t, root, filepath.Join("assets", "textures", "brick.png"), SamplePNG(t, 64))
	WriteBytes(t, root, filepath.Join("assets", "models", "crate.glb"), SampleGLB())
	WriteFile(t, root, filepath.Join("scripts", "spawn.renscript"), "# sample renscript\n")

	if err := os.MkdirAll(filepath.Join(root, ".cache"), 0o755); err != nil {
		t.Fatalf("failed to create cache directory: %v", err)
	}
	return root
}
