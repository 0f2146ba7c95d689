// Package validator implements the CacheValidator component (spec.md
// §4.5): diffing a project's current file set against its persisted
// manifest and file-metadata bundle to decide whether the cache is
// valid, stale, or missing, and to build the ProcessingPlan describing
// exactly what changed.
package validator

import (
	"github.com/renzora/assetcore/internal/classify"
)

// ProcessingPlan is the set of changes needed to reconcile the current
// file tree with the prior scan. The four lists are disjoint: a file
// appears in exactly one of them.
type ProcessingPlan struct {
	NewFiles      []string
	ModifiedFiles []string
	DeletedFiles  []string
	MovedFiles    []MovedFile
}

// MovedFile would record an old/new path pair for a detected rename.
// Move detection is not implemented (spec.md §9: the source this spec
// was distilled from tracks the category but never populates it), so
// MovedFiles is always empty; the type exists so the field isn't a
// breaking addition later.
type MovedFile struct {
	OldPath string
	NewPath string
}

// TotalChanges is the sum of all four change categories.
func (p ProcessingPlan) TotalChanges() int {
	return len(p.NewFiles) + len(p.ModifiedFiles) + len(p.DeletedFiles) + len(p.MovedFiles)
}

// IsEmpty reports whether the plan has no changes at all.
func (p ProcessingPlan) IsEmpty() bool {
	return p.TotalChanges() == 0
}

// bookkeepingDivisor turns total_changes/10 into the overhead term added
// by EstimateProcessingTime, matching the "10% bookkeeping overhead" in
// spec.md §3.
const bookkeepingDivisor = 10

// EstimateProcessingTime sums the per-file_type cost (internal/classify)
// of every new or modified file, plus a flat 10% bookkeeping overhead on
// the total change count. Deleted and moved files cost nothing to
// reconcile.
func (p ProcessingPlan) EstimateProcessingTime() uint64 {
	var total uint64
	for _, f := range p.NewFiles {
		total += classify.ProcessingSeconds(f)
	}
	for _, f := range p.ModifiedFiles {
		total += classify.ProcessingSeconds(f)
	}
	return total + uint64(p.TotalChanges()/bookkeepingDivisor)
}
