package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/livefir/htmlview/cmd/htmlview/commands"
)

// Version information (can be overridden at build time with -ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error

	switch command {
	case "patch":
		err = commands.Patch(args, os.Stdout)
	case "demo":
		err = commands.Demo(args, os.Stdout)
	case "version", "--version", "-v":
		printVersion()
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("htmlview version %s\n", version)

	if info, ok := debug.ReadBuildInfo(); ok {
		revision := commit
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && revision == "unknown" {
				revision = setting.Value
			}
		}
		if len(revision) > 12 {
			revision = revision[:12]
		}
		fmt.Printf("commit: %s\n", revision)
		fmt.Printf("go: %s\n", info.GoVersion)
	}
}

func printUsage() {
	fmt.Println("htmlview - render and patch HTML views")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  htmlview patch <live.html> <incoming.html> [--dry-run] [--config <file>]")
	fmt.Println("                                  Patch live markup in place to match incoming markup")
	fmt.Println("  htmlview demo [--seed <n>] [--config <file>]")
	fmt.Println("                                  Render a generated recipe and update its servings")
	fmt.Println("  htmlview version                Show version information")
	fmt.Println("  htmlview help                   Show this help")
}
