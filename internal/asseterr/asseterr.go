// Package asseterr defines the error taxonomy shared by every layer of the
// asset-processing core. Sentinel values are comparable with errors.Is so
// callers (and tests) can branch on failure class without parsing strings.
package asseterr

import "errors"

var (
	// NotFound means the requested asset path does not exist.
	NotFound = errors.New("asset: not found")

	// InvalidPath means a request path escaped the project root or did not
	// start with the expected projects/<project>/... prefix.
	InvalidPath = errors.New("asset: invalid path")

	// FormatRejected means the asset extension is on the security blacklist.
	FormatRejected = errors.New("asset: format rejected")

	// IoError wraps a read/write/mkdir failure.
	IoError = errors.New("asset: io error")

	// DecodeError means the asset content could not be parsed. Render
	// pipelines catch this and fall back to a placeholder.
	DecodeError = errors.New("asset: decode error")

	// Poisoned means a goroutine holding shared state panicked mid-update.
	// The recovering caller logs this and keeps running; the state it
	// guards should be treated as suspect until the next clean pass.
	Poisoned = errors.New("asset: lock poisoned")

	// Timeout means an external renderer exceeded its time budget.
	Timeout = errors.New("asset: timeout")

	// VersionMismatch means the persisted cache_version disagrees with the
	// running version, forcing a full rebuild.
	VersionMismatch = errors.New("asset: cache version mismatch")
)
