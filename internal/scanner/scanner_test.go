package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func write(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan_IgnoresGitCacheAndDotfiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "assets/images/a.png")
	write(t, root, ".git/HEAD")
	write(t, root, ".cache/other/stale.bin")
	write(t, root, ".cache/thumbnails/a_png_512.png")
	write(t, root, "node_modules/lib/index.js")
	write(t, root, ".hidden/secret.txt")

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	rels := make([]string, len(files))
	for i, f := range files {
		rel, _ := filepath.Rel(root, f)
		rels[i] = filepath.ToSlash(rel)
	}
	sort.Strings(rels)

	want := map[string]bool{
		"assets/images/a.png":             true,
		".cache/thumbnails/a_png_512.png": true,
		"node_modules/lib/index.js":       true,
	}
	got := map[string]bool{}
	for _, r := range rels {
		got[r] = true
	}
	for w := range want {
		if !got[w] {
			t.Errorf("expected %q in scan results, got %v", w, rels)
		}
	}
	for _, excluded := range []string{".git/HEAD", ".cache/other/stale.bin", ".hidden/secret.txt"} {
		if got[excluded] {
			t.Errorf("expected %q to be excluded, got %v", excluded, rels)
		}
	}
}

func TestIncluded_ExcludesConfigFiles(t *testing.T) {
	root := t.TempDir()
	cases := map[string]bool{
		"project.json":             false,
		"package.json":             false,
		"tsconfig.json":            false,
		"webpack.config.js":        false,
		"scenes/level1.json":       false,
		"assets/images/a.png":      true,
		"assets/data/config.json": true,
	}
	for rel, want := range cases {
		abs := filepath.Join(root, rel)
		if got := Included(abs, root); got != want {
			t.Errorf("Included(%q) = %v, want %v", rel, got, want)
		}
	}
}
