// Package build orchestrates one dictionary file per supported language:
// locating that language's monolingual and/or English source files,
// running them through ingest and merge, and writing the result with
// dictfile. A bounded worker pool runs language jobs concurrently; a
// failure in one job is reported and does not affect its siblings.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DavidVentura/tarkka/codec"
	"github.com/DavidVentura/tarkka/dictfile"
	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/ingest"
	"github.com/DavidVentura/tarkka/internal/hash"
	"github.com/DavidVentura/tarkka/internal/pool"
	"github.com/DavidVentura/tarkka/merge"
	"github.com/DavidVentura/tarkka/record"
)

// Paths locates a language's source files and its output directory.
// MonolingualDir and EnglishDir each hold one file per language, named
// "<lang>.jsonl".
type Paths struct {
	MonolingualDir string
	EnglishDir     string
	OutputDir      string
}

func (p Paths) monolingualPath(lang string) string {
	return filepath.Join(p.MonolingualDir, lang+".jsonl")
}

func (p Paths) englishPath(lang string) string {
	return filepath.Join(p.EnglishDir, lang+".jsonl")
}

// LanguageResult reports one language job's outcome.
type LanguageResult struct {
	Lang        string
	OutputPath  string
	Created     bool // false when the output already existed or no source was available
	WordCount   int
	Fingerprint uint64 // xxhash over the sorted word list's encoded content; 0 when not Created
	Err         error  // non-nil on job failure (source missing, malformed line, write failure)
}

// buildLanguage runs one language's full pipeline: locate sources, ingest,
// merge, write. An existing output file is reported via LanguageResult's
// Created=false with Err=nil, matching the upstream no-op-if-exists
// convention. Err is set for failures: no source file for the language
// (errs.ErrIo), I/O, malformed source, or write failure.
func buildLanguage(lang string, paths Paths, buildTime uint64) LanguageResult {
	result := LanguageResult{Lang: lang}

	monoPath := paths.monolingualPath(lang)
	engPath := paths.englishPath(lang)

	hasMono := fileExists(monoPath)
	hasEng := fileExists(engPath)

	if !hasMono && !hasEng {
		result.Err = fmt.Errorf("%w: no source files for language %q", errs.ErrIo, lang)
		return result
	}

	outName := lang + "-english-dictionary.dict"
	if hasMono && hasEng {
		outName = lang + "-multi-dictionary.dict"
	}

	result.OutputPath = filepath.Join(paths.OutputDir, outName)

	if fileExists(result.OutputPath) {
		return result // no-op: Created stays false, Err stays nil
	}

	var mono, eng []ingest.Word

	if hasMono {
		words, err := readSourceFile(monoPath, lang)
		if err != nil {
			result.Err = fmt.Errorf("reading %s: %w", monoPath, err)
			return result
		}

		mono = words
	}

	if hasEng {
		words, err := readSourceFile(engPath, "en")
		if err != nil {
			result.Err = fmt.Errorf("reading %s: %w", engPath, err)
			return result
		}

		eng = words
	}

	tagged, err := merge.Build(mono, eng, merge.DefaultOptions())
	if err != nil {
		result.Err = fmt.Errorf("merging %s: %w", lang, err)
		return result
	}

	if err := dictfile.WriteFile(result.OutputPath, tagged, buildTime); err != nil {
		result.Err = fmt.Errorf("writing %s: %w", result.OutputPath, err)
		return result
	}

	fp, err := fingerprint(tagged)
	if err != nil {
		result.Err = fmt.Errorf("fingerprinting %s: %w", lang, err)
		return result
	}

	result.Created = true
	result.WordCount = len(tagged)
	result.Fingerprint = fp

	return result
}

func readSourceFile(path, langCode string) ([]ingest.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIo, err)
	}
	defer f.Close()

	return ingest.Scan(f, langCode)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// fingerprint hashes the deterministic, timestamp-independent content of
// a language's sorted TaggedWord list, so two builds over identical
// sources can be compared for equality without a byte-for-byte file
// diff (which the header's build timestamp would otherwise defeat).
func fingerprint(words []record.TaggedWord) (uint64, error) {
	bb := pool.GetGroupBuffer()
	defer pool.PutGroupBuffer(bb)

	w := codec.NewWriter(bb)

	for _, tw := range words {
		if err := w.String(tw.Word); err != nil {
			return 0, err
		}

		if err := tw.Encode(w); err != nil {
			return 0, err
		}
	}

	return hash.ID(string(w.Bytes())), nil
}
