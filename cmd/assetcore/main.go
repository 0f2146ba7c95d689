package main

import (
	"fmt"
	"os"

	"github.com/renzora/assetcore/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		cmdValidate(os.Args[2:])
	case "commit":
		cmdCommit(os.Args[2:])
	case "render":
		cmdRender(os.Args[2:])
	case "render-batch":
		cmdRenderBatch(os.Args[2:])
	case "tree":
		cmdTree(os.Args[2:])
	case "clear-cache":
		cmdClearCache(os.Args[2:])
	case "init-config":
		cmdInitConfig()
	case "version":
		fmt.Println(version.String())
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: assetcore <command> [options]

Commands:
  validate <project>                    Check whether a project's cache is valid
  commit <project>                      Re-scan a project and write a fresh manifest
  render <project> <asset> [size]       Render (or fetch cached) a thumbnail for one asset
  render-batch <project> [ext]          Render thumbnails for every model asset (default .glb)
  tree <project>                        Print a project's cached asset tree
  clear-cache <project>|--all           Clear a project's cache, or every project's memory cache
  init-config                           Generate a default config file
  version                               Print version information
  help                                  Show this help message

Arguments:
  [size]              Thumbnail size in pixels (with 'render', default 256)`)
}
