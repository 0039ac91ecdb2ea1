// Package tarkka builds and reads offline dictionary files: one file per
// language, each holding every headword's part-of-speech-tagged senses in
// a seekable-zstd-compressed, front-coded binary layout that supports
// single-word lookup without decompressing the whole file.
//
// This file provides convenience wrappers around the build, dictfile, and
// merge packages for the common cases; for per-language worker pool
// tuning or spill thresholds, use those packages directly.
package tarkka

import (
	"context"

	"go.uber.org/zap"

	"github.com/DavidVentura/tarkka/build"
	"github.com/DavidVentura/tarkka/dictfile"
	"github.com/DavidVentura/tarkka/record"
)

// Build runs the full pipeline for every language in build.SupportedLanguages,
// reading monolingual and English kaikki JSON-Lines sources from paths and
// writing one .dict file per language into paths.OutputDir. buildTime is
// recorded in each file's header. A nil logger discards log output.
//
// Build itself only fails if the pipeline's context is canceled; a single
// language's failure (missing sources, malformed input) is reported in
// that language's BuildSummary.Results entry and does not affect others.
func Build(ctx context.Context, paths build.Paths, buildTime uint64, logger *zap.Logger) (build.BuildSummary, error) {
	return build.Run(ctx, paths, build.SupportedLanguages, build.DefaultConcurrency, buildTime, logger)
}

// Open opens a .dict file at path for lookup. Callers must Close the
// returned Reader.
func Open(path string) (*dictfile.Reader, error) {
	return dictfile.OpenFile(path)
}

// Lookup opens the .dict file at path, looks up word, and closes the file
// before returning. For repeated lookups against the same file, Open it
// once and call Reader.Lookup directly instead.
func Lookup(path, word string) (*record.TaggedWord, error) {
	r, err := dictfile.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Lookup(word)
}
