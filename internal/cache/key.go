package cache

import "fmt"

// TTLs, in seconds, for each cache key family. Values are carried over
// unchanged from the original memory cache's per-call TTL arguments.
const (
	TTLScriptList      uint64 = 300
	TTLCompiledScript  uint64 = 600
	TTLProjectManifest uint64 = 86400
	TTLProjectFiles    uint64 = 86400
	TTLProjectAssets   uint64 = 86400
	TTLProjectTree     uint64 = 86400
)

const keyScriptList = "renscripts:list"

func keyCompiledScript(scriptName string) string {
	return fmt.Sprintf("renscript:compiled:%s", scriptName)
}

func keyManifest(project string) string {
	return fmt.Sprintf("project:%s:manifest", project)
}

func keyFiles(project string) string {
	return fmt.Sprintf("project:%s:files", project)
}

func keyProcessed(project string) string {
	return fmt.Sprintf("project:%s:processed", project)
}

func keyAssetTree(project string) string {
	return fmt.Sprintf("project:%s:asset_tree", project)
}
