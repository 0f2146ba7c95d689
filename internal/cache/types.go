package cache

// ScriptSearchResult describes one discovered script file, cached as part
// of a CachedScriptList under the renscripts:list key.
type ScriptSearchResult struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Directory    string `json:"directory"`
	LastModified int64  `json:"last_modified"`
}

// CachedScriptList wraps a cached script listing with the timestamp it was
// captured at, so a consumer can judge staleness without a separate TTL
// query.
type CachedScriptList struct {
	Scripts    []ScriptSearchResult `json:"scripts"`
	Timestamp  uint64               `json:"timestamp"`
	TotalCount int                  `json:"total_count"`
}

// ProjectManifest is the cached summary of a project's last successful
// scan: enough to answer "has anything changed" without re-walking the
// tree (spec.md §4.5, update_project_manifest).
type ProjectManifest struct {
	ProjectName  string `json:"project_name"`
	LastScan     uint64 `json:"last_scan"`
	FileCount    int    `json:"file_count"`
	Checksum     string `json:"checksum"`
	CacheVersion string `json:"cache_version"`
}

// FileMetadata is the cached per-file record backing the full-diff path of
// validate() (Plan): the (mtime, size) pair is what's compared on
// subsequent scans, and Hash is only populated when a caller opts into the
// out-of-band content/perceptual hash (see internal/fingerprint).
type FileMetadata struct {
	Path         string `json:"path"`
	LastModified uint64 `json:"last_modified"`
	FileSize     uint64 `json:"file_size"`
	Hash         string `json:"hash"`
	ProcessedAt  uint64 `json:"processed_at"`
	FileType     string `json:"file_type"`
}

// ProcessedAsset records the outcome of processing one asset: its
// generated thumbnail (if any), an optional compressed variant, and any
// materials extracted from it (e.g. glTF embedded textures).
type ProcessedAsset struct {
	Path                string         `json:"path"`
	FileType            string         `json:"file_type"`
	Metadata            map[string]any `json:"metadata"`
	ThumbnailPath       *string        `json:"thumbnail_path"`
	CompressedPath      *string        `json:"compressed_path"`
	ExtractedMaterials  []string       `json:"extracted_materials"`
	ProcessingStatus    string         `json:"processing_status"`
	ProcessedAt         uint64         `json:"processed_at"`
}

// CachedAssetNode is one entry in a ProjectAssetTree: either a directory
// (Children populated, file fields nil) or a file (Children nil).
type CachedAssetNode struct {
	Name         string             `json:"name"`
	Path         string             `json:"path"`
	IsDirectory  bool               `json:"is_directory"`
	FileSize     *uint64            `json:"file_size,omitempty"`
	LastModified *uint64            `json:"last_modified,omitempty"`
	Extension    *string            `json:"extension,omitempty"`
	FileType     *string            `json:"file_type,omitempty"`
	ThumbnailURL *string            `json:"thumbnail_url,omitempty"`
	Children     []*CachedAssetNode `json:"children,omitempty"`
}

// ProjectAssetTree is the cached, pre-built directory tree a UI can render
// directly without re-walking the filesystem (SPEC_FULL.md supplemental
// feature C.1).
type ProjectAssetTree struct {
	ProjectName     string             `json:"project_name"`
	RootPath        string             `json:"root_path"`
	Assets          []*CachedAssetNode `json:"assets"`
	GeneratedAt     uint64             `json:"generated_at"`
	TotalFiles      int                `json:"total_files"`
	TotalDirectories int               `json:"total_directories"`
}
