package validator

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/asseterr"
	"github.com/renzora/assetcore/internal/cache"
	"github.com/renzora/assetcore/internal/classify"
	"github.com/renzora/assetcore/internal/fingerprint"
	"github.com/renzora/assetcore/internal/scanner"
)

// CacheVersion is the manifest format version this validator writes and
// expects. A persisted manifest carrying a different value is treated as
// stale regardless of its checksum (spec.md §6).
const CacheVersion = "1.0"

// Cache status values for CacheValidationResult.CacheStatus.
const (
	StatusValid            = "valid"
	StatusNeedsUpdate      = "needs_update"
	StatusNeedsFullRebuild = "needs_full_rebuild"
	StatusMissing          = "missing"
)

// ChangeSummary breaks a ProcessingPlan's change count down by category.
type ChangeSummary struct {
	NewFiles      int `json:"new_files"`
	ModifiedFiles int `json:"modified_files"`
	DeletedFiles  int `json:"deleted_files"`
	MovedFiles    int `json:"moved_files"`
}

// CacheValidationResult is the outcome of Validate: enough for a caller
// to decide whether to trigger processing, and a cost estimate if so.
type CacheValidationResult struct {
	CacheStatus             string        `json:"cache_status"`
	ChangesDetected         int           `json:"changes_detected"`
	EstimatedProcessingTime uint64        `json:"estimated_processing_time"`
	ChangeSummary           ChangeSummary `json:"change_summary"`
}

// Validator implements validate()/plan()/update_project_manifest() against
// a shared MemoryCache and a projects directory on disk.
type Validator struct {
	cache       *cache.Cache
	projectsDir string
}

// New builds a Validator backed by c, rooted at projectsDir (the parent
// of every project directory).
func New(c *cache.Cache, projectsDir string) *Validator {
	return &Validator{cache: c, projectsDir: projectsDir}
}

func (v *Validator) projectRoot(project string) string {
	return filepath.Join(v.projectsDir, project)
}

func (v *Validator) relPath(absPath, project string) string {
	rel, err := filepath.Rel(v.projectRoot(project), absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

// Validate implements spec.md §4.5's validate() algorithm: a fast path
// when the prior manifest's file count and checksum both match the
// current scan, otherwise a full diff via Plan.
func (v *Validator) Validate(project string) (CacheValidationResult, error) {
	prior, hasPrior := v.cache.GetProjectManifest(project)

	currentFiles, err := scanner.Scan(v.projectRoot(project))
	if err != nil {
		return CacheValidationResult{}, err
	}
	currentCount := len(currentFiles)

	stats := fingerprint.StatFiles(currentFiles, func(abs string) string {
		return v.relPath(abs, project)
	})
	currentChecksum := fingerprint.ProjectFingerprint(stats)

	versionMatches := hasPrior && prior.CacheVersion == CacheVersion

	if hasPrior && versionMatches && prior.FileCount == currentCount && prior.Checksum == currentChecksum {
		log.Debug().Str("project", project).Msg("validator: cache is valid, fast path")
		return CacheValidationResult{CacheStatus: StatusValid}, nil
	}

	plan, err := v.Plan(project, currentFiles)
	if err != nil {
		return CacheValidationResult{}, err
	}

	var status string
	switch {
	case !hasPrior:
		status = StatusMissing
	case !versionMatches:
		status = StatusNeedsFullRebuild
		log.Warn().Err(fmt.Errorf("validator: project %s: %w", project, asseterr.VersionMismatch)).
			Str("project", project).Str("persisted", prior.CacheVersion).Str("running", CacheVersion).
			Msg("validator: persisted cache version mismatch, forcing full rebuild")
	case currentCount > 0 && plan.TotalChanges() > currentCount/2:
		status = StatusNeedsFullRebuild
	default:
		status = StatusNeedsUpdate
	}

	log.Info().Str("project", project).Str("status", status).
		Int("changes", plan.TotalChanges()).Msg("validator: cache needs attention")

	return CacheValidationResult{
		CacheStatus:             status,
		ChangesDetected:         plan.TotalChanges(),
		EstimatedProcessingTime: plan.EstimateProcessingTime(),
		ChangeSummary: ChangeSummary{
			NewFiles:      len(plan.NewFiles),
			ModifiedFiles: len(plan.ModifiedFiles),
			DeletedFiles:  len(plan.DeletedFiles),
			MovedFiles:    len(plan.MovedFiles),
		},
	}, nil
}

// Plan implements spec.md §4.5's plan() algorithm: diff currentFiles
// (absolute paths) against the persisted file-metadata bundle.
func (v *Validator) Plan(project string, currentFiles []string) (ProcessingPlan, error) {
	plan := ProcessingPlan{}

	cached := v.cache.GetAllFileMetadata(project)
	byPath := make(map[string]cache.FileMetadata, len(cached))
	for _, m := range cached {
		byPath[m.Path] = m
	}

	for _, abs := range currentFiles {
		rel := v.relPath(abs, project)
		if prior, ok := byPath[rel]; ok {
			needsReprocessing, err := fileNeedsReprocessing(abs, prior)
			if err != nil {
				// Unreadable metadata: drop it from byPath so it is counted
				// as neither new, modified nor deleted, matching the "hash
				// failures don't abort" failure model; it will surface
				// again on the next scan.
				delete(byPath, rel)
				continue
			}
			if needsReprocessing {
				plan.ModifiedFiles = append(plan.ModifiedFiles, abs)
			}
			delete(byPath, rel)
		} else {
			plan.NewFiles = append(plan.NewFiles, abs)
		}
	}

	for rel := range byPath {
		plan.DeletedFiles = append(plan.DeletedFiles, rel)
	}

	return plan, nil
}

// fileNeedsReprocessing compares the current file's size and modified
// time against the cached record, per spec.md §4.5's tie-break rules:
// size disagreement always means modified, and a prior record with
// processed_at == 0 means the file was scanned but never actually
// processed.
func fileNeedsReprocessing(absPath string, prior cache.FileMetadata) (bool, error) {
	stat := fingerprint.StatFile(absPath, "")
	if stat.Size != prior.FileSize {
		return true, nil
	}
	if stat.ModifiedUnix != prior.LastModified {
		return true, nil
	}
	if prior.ProcessedAt == 0 {
		return true, nil
	}
	return false, nil
}

// UpdateProjectManifest recomputes the project checksum from currentFiles
// and writes a fresh ProjectManifest, replacing any prior one. Call this
// only after every changed file has actually been processed.
func (v *Validator) UpdateProjectManifest(project string, currentFiles []string) error {
	stats := fingerprint.StatFiles(currentFiles, func(abs string) string {
		return v.relPath(abs, project)
	})
	checksum := fingerprint.ProjectFingerprint(stats)

	manifest := cache.ProjectManifest{
		ProjectName:  project,
		LastScan:     nowUnix(),
		FileCount:    len(currentFiles),
		Checksum:     checksum,
		CacheVersion: CacheVersion,
	}
	if !v.cache.CacheProjectManifest(manifest) {
		log.Warn().Str("project", project).Msg("validator: failed to persist project manifest")
	}

	files := make([]cache.FileMetadata, 0, len(stats))
	for _, s := range stats {
		files = append(files, cache.FileMetadata{
			Path:         s.RelPath,
			LastModified: s.ModifiedUnix,
			FileSize:     s.Size,
			FileType:     classify.FileType(s.RelPath),
			ProcessedAt:  nowUnix(),
		})
	}
	v.cache.CacheFileMetadata(project, files)

	return nil
}
