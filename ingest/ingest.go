// Package ingest parses one language edition's kaikki.org/Wiktextract
// JSON-Lines export into record.WordEntry values ready for the merge
// package, applying the same filter/normalize rules the source project
// used: drop lines with no lang_code, drop multi-word "phrases" (the word
// itself contains a space or the ideographic comma U+FF0C), drop
// senses-less entries, drop the "proverb" part of speech outright, and
// trim/dedupe/strip-trailing-period every gloss line.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/record"
)

// unwantedPOS lists source part-of-speech tags dropped outright: a
// dictionary of single words has no use for a whole-sentence proverb
// entry.
var unwantedPOS = map[string]bool{
	"proverb": true,
}

// sourceSound is one kaikki "sounds" array element. Only entries with a
// non-empty IPA transcription survive ingestion.
type sourceSound struct {
	IPA string `json:"ipa"`
}

// sourceHyphenation is one kaikki "hyphenations" array element.
type sourceHyphenation struct {
	Parts []string `json:"parts"`
}

// sourceSense is one kaikki "senses" array element.
type sourceSense struct {
	Glosses []string `json:"glosses"`
}

// sourceLine is one decoded kaikki JSON-Lines record.
type sourceLine struct {
	Word         string              `json:"word"`
	POS          string              `json:"pos"`
	LangCode     string              `json:"lang_code"`
	Senses       []sourceSense       `json:"senses"`
	Sounds       []sourceSound       `json:"sounds"`
	Hyphenations []sourceHyphenation `json:"hyphenations"`
	Redirects    []string            `json:"redirects"`
}

// Word is one headword's contribution from a single source file: one
// WordEntry plus the side-channel fields (sounds/hyphenations/redirects)
// that the merge package aggregates across files before they become part
// of a record.TaggedWord.
type Word struct {
	Word         string
	Entry        record.WordEntry
	Sound        *string
	Hyphenations []string
	Redirects    []string
}

// Scan reads one kaikki JSON-Lines file for langCode, returning one Word
// per accepted line. A line is silently skipped if it fails any
// structural filter (wrong language, multi-word headword, no senses,
// unwanted POS) or if its pos string isn't one of the 46 recognized
// tags — the literal tag "unknown" is recognized and maps to
// record.PartOfSpeechUnknown, matching the source project's closed
// TryFrom<&str> match; anything outside that vocabulary drops the line
// rather than falling back to it.
//
// Scan fails with errs.ErrIo on any read error and errs.ErrInvalidData on
// malformed JSON.
func Scan(r io.Reader, langCode string) ([]Word, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var out []Word

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var src sourceLine
		if err := json.Unmarshal(line, &src); err != nil {
			return nil, fmt.Errorf("%w: decoding kaikki line: %v", errs.ErrInvalidData, err)
		}

		if src.LangCode != langCode {
			continue
		}

		if src.Word == "" || strings.ContainsAny(src.Word, " ，") {
			continue
		}

		if unwantedPOS[src.POS] {
			continue
		}

		if len(src.Senses) == 0 {
			continue
		}

		word, ok := toWord(src)
		if !ok {
			continue
		}

		out = append(out, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning kaikki file: %v", errs.ErrIo, err)
	}

	return out, nil
}

func toWord(src sourceLine) (Word, bool) {
	pos, ok := record.ParsePartOfSpeech(src.POS)
	if !ok {
		return Word{}, false
	}

	lines := normalizeGlossLines(src.Senses)
	if len(lines) == 0 {
		return Word{}, false
	}

	gloss := record.Gloss{GlossLines: lines}
	sense := record.Sense{POS: pos, Glosses: []record.Gloss{gloss}}

	var sound *string
	for _, s := range src.Sounds {
		if s.IPA != "" {
			ipa := s.IPA
			sound = &ipa
			break
		}
	}

	var hyphenations []string
	if len(src.Hyphenations) > 0 {
		hyphenations = src.Hyphenations[0].Parts
	}

	return Word{
		Word:         src.Word,
		Entry:        record.WordEntry{Senses: []record.Sense{sense}},
		Sound:        sound,
		Hyphenations: hyphenations,
		Redirects:    dedupeStrings(src.Redirects),
	}, true
}

// normalizeGlossLines trims whitespace, strips a trailing ".", and
// deduplicates gloss lines in insertion order across every sense the
// kaikki line carried, flattening them into the single Gloss this
// package emits per Word (the merge package aggregates further across
// files and POS groups).
func normalizeGlossLines(senses []sourceSense) []string {
	var lines []string
	seen := make(map[string]bool)

	for _, sense := range senses {
		for _, g := range sense.Glosses {
			line := strings.TrimSuffix(strings.TrimSpace(g), ".")
			if line == "" || seen[line] {
				continue
			}

			seen[line] = true
			lines = append(lines, line)
		}
	}

	return lines
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))

	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}

		seen[s] = true
		out = append(out, s)
	}

	return out
}
