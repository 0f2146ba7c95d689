// Package glb implements the GlbRenderer component (spec.md §4.7): 3D
// model thumbnails are produced by an external renderer process (a
// headless GPU/model-viewer binary), invoked the same way an external
// media tool is shelled out to elsewhere in this codebase.
package glb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/asseterr"
	"github.com/renzora/assetcore/internal/render/placeholder"
)

// renderMu serializes calls into the external renderer: spec.md §5 treats
// the GPU/headless-browser runtime as one instance per process.
var renderMu sync.Mutex

// Renderer shells out to an external binary to produce a framed-camera
// render of a 3D model, falling back to the placeholder renderer when the
// binary is missing, times out, or exits non-zero.
type Renderer struct {
	binary        string
	timeout       time.Duration
	retryMax      int
	lookupOnce    sync.Once
	resolvedPath  string
}

// New returns a Renderer that shells out to binary (resolved via PATH if
// not absolute). If binary is empty, Render always falls back to the
// placeholder renderer.
func New(binary string, timeout time.Duration, retryMax int) *Renderer {
	return &Renderer{binary: binary, timeout: timeout, retryMax: retryMax}
}

func (r *Renderer) resolve() string {
	r.lookupOnce.Do(func() {
		if r.binary == "" {
			return
		}
		path, err := exec.LookPath(r.binary)
		if err != nil {
			log.Warn().Err(err).Str("binary", r.binary).Msg("glb: renderer binary not found, falling back to placeholders")
			return
		}
		r.resolvedPath = path
	})
	return r.resolvedPath
}

// Render produces a size x size PNG of srcPath's model at dstPath. Any
// failure (missing binary, timeout, non-zero exit, malformed output) is
// absorbed into a placeholder render rather than propagated, matching the
// mandatory-fallback contract RendererDispatch relies on.
func (r *Renderer) Render(ctx context.Context, srcPath, dstPath string, size int) error {
	bin := r.resolve()
	if bin == "" {
		return placeholder.Render(srcPath, dstPath, size)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}

	op := func() (struct{}, error) {
		renderMu.Lock()
		defer renderMu.Unlock()

		runCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		cmd := exec.CommandContext(runCtx, bin,
			"--input", srcPath,
			"--output", dstPath,
			"--size", fmt.Sprintf("%d", size),
		)
		out, err := cmd.CombinedOutput()
		if err != nil {
			if runCtx.Err() == context.DeadlineExceeded {
				return struct{}{}, fmt.Errorf("glb: render timed out after %s for %s: %w", r.timeout, srcPath, asseterr.Timeout)
			}
			return struct{}{}, fmt.Errorf("glb: render failed for %s: %w: %s", srcPath, err, out)
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithMaxTries(uint(maxInt(r.retryMax, 1))),
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", srcPath).Msg("glb: renderer exhausted retries, falling back to placeholder")
		return placeholder.Render(srcPath, dstPath, size)
	}

	if _, statErr := os.Stat(dstPath); statErr != nil {
		log.Warn().Err(statErr).Str("path", srcPath).Msg("glb: renderer reported success but produced no output, falling back to placeholder")
		return placeholder.Render(srcPath, dstPath, size)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
