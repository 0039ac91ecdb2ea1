// Command tarkka builds and queries offline dictionary files.
//
// Usage:
//
//	tarkka build [-monolingual <dir>] [-english <dir>] <out-dir>
//	tarkka lookup <dict-file> <word>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DavidVentura/tarkka/build"
	"github.com/DavidVentura/tarkka/dictfile"
	"github.com/DavidVentura/tarkka/record"
)

// newConsoleLogger builds a human-readable logger for CLI use. Library
// callers of the build package pass their own *zap.Logger instead.
func newConsoleLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.TimeKey = ""

	return cfg.Build()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "lookup":
		return runLookup(args[1:])
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  tarkka build [-monolingual <dir>] [-english <dir>] <out-dir>")
	fmt.Fprintln(os.Stderr, "  tarkka lookup <dict-file> <word>")
}

// runBuild acquires and processes every supported language, writing one
// .dict file per language into out-dir. Worker pool sizes are the
// package-level constants build.DefaultConcurrency and
// dictfile.CompileConcurrency, not flags.
func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	monoDir := fs.String("monolingual", "out/monolingual", "directory of per-language monolingual kaikki JSON-Lines sources")
	engDir := fs.String("english", "out/english", "directory of per-language English kaikki JSON-Lines sources")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		usage()
		return 1
	}

	outDir := fs.Arg(0)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "tarkka build:", err)
		return 1
	}

	logger, err := newConsoleLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tarkka build: setting up logger:", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	paths := build.Paths{
		MonolingualDir: *monoDir,
		EnglishDir:     *engDir,
		OutputDir:      outDir,
	}

	buildTime := uint64(time.Now().Unix())

	summary, err := build.Run(context.Background(), paths, build.SupportedLanguages, build.DefaultConcurrency, buildTime, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tarkka build:", err)
		return 1
	}

	fmt.Printf("Completed: %d dictionaries created, %d languages skipped\n", summary.Created, summary.Skipped)

	return 0
}

func runLookup(args []string) int {
	if len(args) != 2 {
		usage()
		return 2
	}

	path, word := args[0], args[1]

	r, err := dictfile.OpenFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tarkka lookup:", err)
		return 2
	}
	defer r.Close()

	tw, err := r.Lookup(word)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tarkka lookup:", err)
		return 2
	}

	if tw == nil {
		fmt.Printf("%q: not found\n", word)
		return 1
	}

	printTaggedWord(*tw)

	return 0
}

func printTaggedWord(tw record.TaggedWord) {
	fmt.Printf("%s (%s)\n", tw.Word, tw.Tag)

	for i, e := range tw.Entries {
		fmt.Printf("  entry %d:\n", i+1)

		for _, s := range e.Senses {
			fmt.Printf("    %s\n", s.POS)

			for _, g := range s.Glosses {
				for _, line := range g.GlossLines {
					fmt.Printf("      - %s\n", line)
				}
			}
		}
	}

	if tw.Sounds != nil {
		fmt.Printf("  pronunciation: %s\n", *tw.Sounds)
	}

	if len(tw.Hyphenations) > 0 {
		fmt.Printf("  hyphenation: %v\n", tw.Hyphenations)
	}

	if len(tw.Redirects) > 0 {
		fmt.Printf("  redirects: %v\n", tw.Redirects)
	}
}
