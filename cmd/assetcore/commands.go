package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/renzora/assetcore/internal/cache"
	"github.com/renzora/assetcore/internal/config"
	"github.com/renzora/assetcore/internal/core"
)

func newCore() *core.Core {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	c, err := core.New(core.Options{
		ProjectsDir:         cfg.Server.ProjectsDir,
		CacheMaxEntries:     cfg.Cache.MaxEntries,
		CacheEnabled:        cfg.Cache.Enabled,
		GlbRendererBinary:   cfg.Renderer.GlbRenderer,
		GlbTimeout:          time.Duration(cfg.Renderer.GlbTimeoutSeconds) * time.Second,
		GlbRetryMaxAttempts: cfg.Renderer.GlbRetryMaxAttempts,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing core: %v\n", err)
		os.Exit(1)
	}
	return c
}

func cmdValidate(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcore validate <project>")
		os.Exit(1)
	}
	co := newCore()
	result, err := co.ValidateProject(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error validating project: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("cache_status: %s\n", result.CacheStatus)
	fmt.Printf("changes_detected: %s\n", humanize.Comma(int64(result.ChangesDetected)))
	fmt.Printf("estimated_processing_time: %s\n", time.Duration(result.EstimatedProcessingTime)*time.Second)
	fmt.Printf("  new: %d  modified: %d  deleted: %d  moved: %d\n",
		result.ChangeSummary.NewFiles, result.ChangeSummary.ModifiedFiles,
		result.ChangeSummary.DeletedFiles, result.ChangeSummary.MovedFiles)
}

func cmdCommit(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcore commit <project>")
		os.Exit(1)
	}
	co := newCore()
	if err := co.CommitProject(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "error committing project: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s committed\n", args[0])
}

func cmdRender(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: assetcore render <project> <asset> [size]")
		os.Exit(1)
	}
	project, asset := args[0], args[1]

	size := 256
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid size: %s\n", args[2])
			os.Exit(1)
		}
		size = n
	}

	co := newCore()
	start := time.Now()
	result, err := co.RenderThumbnail(context.Background(), project, asset, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error rendering thumbnail: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s (cached=%v, took %s)\n", result.ThumbnailRelPath, result.Cached, time.Since(start).Round(time.Millisecond))
}

func cmdRenderBatch(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcore render-batch <project> [extension]")
		os.Exit(1)
	}
	project := args[0]
	ext := ""
	if len(args) > 1 {
		ext = args[1]
	}

	co := newCore()
	start := time.Now()
	result := co.RenderBatch(context.Background(), project, ext)
	fmt.Printf("rendered: %d  cached: %d  skipped: %d  failed: %d  (took %s)\n",
		result.Rendered, result.Cached, result.Skipped, len(result.Failed), time.Since(start).Round(time.Second))
	for _, f := range result.Failed {
		fmt.Printf("  failed: %s\n", f)
	}
}

func cmdTree(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcore tree <project>")
		os.Exit(1)
	}
	co := newCore()
	tree, err := co.BuildAssetTree(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building asset tree: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d files, %d directories\n", tree.ProjectName, tree.TotalFiles, tree.TotalDirectories)
	for _, node := range tree.Assets {
		printNode(node, 0)
	}
}

func printNode(node *cache.CachedAssetNode, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if node.IsDirectory {
		fmt.Printf("%s%s/\n", indent, node.Name)
		for _, child := range node.Children {
			printNode(child, depth+1)
		}
		return
	}

	size := "?"
	if node.FileSize != nil {
		size = humanize.Bytes(*node.FileSize)
	}
	fmt.Printf("%s%s (%s)\n", indent, node.Name, size)
}

func cmdClearCache(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: assetcore clear-cache <project>|--all")
		os.Exit(1)
	}
	co := newCore()
	if args[0] == "--all" {
		n := co.ClearAllCache()
		fmt.Printf("cleared %d cache entries across all projects\n", n)
		return
	}
	n := co.ClearProjectCache(args[0])
	fmt.Printf("cleared %d cache entries for %s\n", n, args[0])
}

func cmdInitConfig() {
	if err := config.InitConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "error generating config: %v\n", err)
		os.Exit(1)
	}
}
