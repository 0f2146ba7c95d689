package cache

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

func nowUnix() uint64 {
	return uint64(time.Now().Unix())
}

// CacheCompiledScript stores the compiled JS for a renscript under a
// 10-minute TTL.
func (c *Cache) CacheCompiledScript(scriptName, compiledJS string) {
	c.SetStringTTL(keyCompiledScript(scriptName), compiledJS, TTLCompiledScript)
}

// GetCachedCompiledScript retrieves a previously cached compiled script.
func (c *Cache) GetCachedCompiledScript(scriptName string) (string, bool) {
	return c.GetString(keyCompiledScript(scriptName))
}

// CacheScriptList stores the full script listing under a 5-minute TTL.
func (c *Cache) CacheScriptList(scripts []ScriptSearchResult) bool {
	cached := CachedScriptList{
		Scripts:    scripts,
		Timestamp:  nowUnix(),
		TotalCount: len(scripts),
	}
	data, err := json.Marshal(cached)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to serialize script list")
		return false
	}
	c.SetStringTTL(keyScriptList, string(data), TTLScriptList)
	return true
}

// GetCachedScriptList retrieves the cached script listing, if present and
// unexpired.
func (c *Cache) GetCachedScriptList() ([]ScriptSearchResult, bool) {
	raw, ok := c.GetString(keyScriptList)
	if !ok {
		return nil, false
	}
	var cached CachedScriptList
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		log.Warn().Err(err).Msg("cache: failed to deserialize script list")
		return nil, false
	}
	return cached.Scripts, true
}

// CacheProjectManifest stores a project's manifest under a 24-hour TTL.
func (c *Cache) CacheProjectManifest(manifest ProjectManifest) bool {
	data, err := json.Marshal(manifest)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to serialize project manifest")
		return false
	}
	c.SetStringTTL(keyManifest(manifest.ProjectName), string(data), TTLProjectManifest)
	return true
}

// GetProjectManifest retrieves a project's cached manifest.
func (c *Cache) GetProjectManifest(project string) (ProjectManifest, bool) {
	raw, ok := c.GetString(keyManifest(project))
	if !ok {
		return ProjectManifest{}, false
	}
	var manifest ProjectManifest
	if err := json.Unmarshal([]byte(raw), &manifest); err != nil {
		log.Warn().Err(err).Str("project", project).Msg("cache: failed to deserialize project manifest")
		return ProjectManifest{}, false
	}
	return manifest, true
}

// CacheProjectAssetTree stores a project's pre-built asset tree under a
// 24-hour TTL.
func (c *Cache) CacheProjectAssetTree(tree ProjectAssetTree) bool {
	data, err := json.Marshal(tree)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to serialize project asset tree")
		return false
	}
	c.SetStringTTL(keyAssetTree(tree.ProjectName), string(data), TTLProjectTree)
	return true
}

// GetProjectAssetTree retrieves a project's cached asset tree.
func (c *Cache) GetProjectAssetTree(project string) (ProjectAssetTree, bool) {
	raw, ok := c.GetString(keyAssetTree(project))
	if !ok {
		return ProjectAssetTree{}, false
	}
	var tree ProjectAssetTree
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		log.Warn().Err(err).Str("project", project).Msg("cache: failed to deserialize project asset tree")
		return ProjectAssetTree{}, false
	}
	return tree, true
}

// CacheFileMetadata stores every file's metadata for project, keyed
// internally by path so repeated calls overwrite rather than accumulate.
func (c *Cache) CacheFileMetadata(project string, files []FileMetadata) bool {
	byPath := make(map[string]FileMetadata, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}
	data, err := json.Marshal(byPath)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to serialize file metadata")
		return false
	}
	c.SetStringTTL(keyFiles(project), string(data), TTLProjectFiles)
	return true
}

// GetAllFileMetadata retrieves every cached file metadata record for
// project. A cache miss returns an empty, non-nil slice.
func (c *Cache) GetAllFileMetadata(project string) []FileMetadata {
	raw, ok := c.GetString(keyFiles(project))
	if !ok {
		return []FileMetadata{}
	}
	var byPath map[string]FileMetadata
	if err := json.Unmarshal([]byte(raw), &byPath); err != nil {
		log.Warn().Err(err).Str("project", project).Msg("cache: failed to deserialize file metadata")
		return []FileMetadata{}
	}
	out := make([]FileMetadata, 0, len(byPath))
	for _, f := range byPath {
		out = append(out, f)
	}
	return out
}

// CacheProcessedAsset merges asset into the project's processed-asset map
// and re-stores it, matching the read-modify-write of the original
// cache_processed_asset (there is no atomic single-key update available).
func (c *Cache) CacheProcessedAsset(project string, asset ProcessedAsset) bool {
	key := keyProcessed(project)
	assets := map[string]ProcessedAsset{}
	if raw, ok := c.GetString(key); ok {
		_ = json.Unmarshal([]byte(raw), &assets)
	}
	assets[asset.Path] = asset

	data, err := json.Marshal(assets)
	if err != nil {
		log.Warn().Err(err).Msg("cache: failed to serialize processed asset")
		return false
	}
	c.SetStringTTL(key, string(data), TTLProjectAssets)
	return true
}

// GetAllProcessedAssets retrieves every cached processed-asset record for
// project. A cache miss returns an empty, non-nil slice.
func (c *Cache) GetAllProcessedAssets(project string) []ProcessedAsset {
	raw, ok := c.GetString(keyProcessed(project))
	if !ok {
		return []ProcessedAsset{}
	}
	var assets map[string]ProcessedAsset
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		log.Warn().Err(err).Str("project", project).Msg("cache: failed to deserialize processed assets")
		return []ProcessedAsset{}
	}
	out := make([]ProcessedAsset, 0, len(assets))
	for _, a := range assets {
		out = append(out, a)
	}
	return out
}
