// Package merge builds a language's final sorted, deduplicated
// TaggedWord list from its monolingual and English ingest.Word streams:
// group by headword, pick a WordTag from which side(s) contributed, merge
// same-POS senses within each side, and prefer monolingual sound and
// hyphenation data over English when both are present.
//
// When Options.SpillThreshold is positive, Build instead spills
// partially-grouped batches to disk as sorted runs (spill.go) and
// k-way-merges them (run_merge.go) rather than building one map over all
// records.
package merge

import (
	"sort"

	"github.com/DavidVentura/tarkka/ingest"
	"github.com/DavidVentura/tarkka/record"
)

// group accumulates every ingest.Word seen for one headword, split by
// which source side it came from.
type group struct {
	mono []ingest.Word
	eng  []ingest.Word
}

// groupWords folds words into the mono or eng bucket of its headword's group.
func groupWords(dst map[string]*group, words []ingest.Word, side func(*group) *[]ingest.Word) {
	for _, w := range words {
		g, ok := dst[w.Word]
		if !ok {
			g = &group{}
			dst[w.Word] = g
		}

		p := side(g)
		*p = append(*p, w)
	}
}

// aggregateGroups turns a map of per-headword groups into the final
// sorted TaggedWord list.
func aggregateGroups(groups map[string]*group) []record.TaggedWord {
	words := make([]string, 0, len(groups))
	for w := range groups {
		words = append(words, w)
	}

	sort.Strings(words) // lexicographic byte order on UTF-8 bytes

	out := make([]record.TaggedWord, 0, len(words))
	for _, w := range words {
		out = append(out, aggregateOne(w, groups[w]))
	}

	return out
}

// aggregateOne builds one TaggedWord from a headword's mono/eng group,
// matching the source project's build_tagged_index: tag from which
// side(s) are non-empty, entries in [mono, eng] order for WordTagBoth,
// sound/hyphenation preferring monolingual, redirects unioned in
// insertion order.
func aggregateOne(word string, g *group) record.TaggedWord {
	hasMono := len(g.mono) > 0
	hasEng := len(g.eng) > 0

	var tag record.WordTag
	switch {
	case hasMono && hasEng:
		tag = record.WordTagBoth
	case hasMono:
		tag = record.WordTagMonolingual
	default:
		tag = record.WordTagEnglish
	}

	monoSound, monoHyph := extractSoundAndHyphenation(g.mono)
	engSound, engHyph := extractSoundAndHyphenation(g.eng)

	var entries []record.WordEntry
	var sound *string
	var hyph []string

	switch tag {
	case record.WordTagMonolingual:
		entries = []record.WordEntry{aggregateEntries(g.mono)}
		sound, hyph = monoSound, monoHyph
	case record.WordTagEnglish:
		entries = []record.WordEntry{aggregateEntries(g.eng)}
		sound, hyph = engSound, engHyph
	case record.WordTagBoth:
		entries = []record.WordEntry{aggregateEntries(g.mono), aggregateEntries(g.eng)}
		sound = monoSound
		if sound == nil {
			sound = engSound
		}
		hyph = monoHyph
		if len(hyph) == 0 {
			hyph = engHyph
		}
	}

	return record.TaggedWord{
		Tag:          tag,
		Word:         word,
		Entries:      entries,
		Sounds:       sound,
		Hyphenations: hyph,
		Redirects:    unionRedirects(g.mono, g.eng),
	}
}

// extractSoundAndHyphenation returns the first non-empty sound and the
// first non-empty hyphenation list found across words, in slice order.
func extractSoundAndHyphenation(words []ingest.Word) (*string, []string) {
	var sound *string
	var hyph []string

	for _, w := range words {
		if sound == nil && w.Sound != nil {
			sound = w.Sound
		}

		if len(hyph) == 0 && len(w.Hyphenations) > 0 {
			hyph = w.Hyphenations
		}
	}

	return sound, hyph
}

// aggregateEntries merges every word's single-sense WordEntry into one,
// then collapses senses sharing a POS.
func aggregateEntries(words []ingest.Word) record.WordEntry {
	var senses []record.Sense
	for _, w := range words {
		senses = append(senses, w.Entry.Senses...)
	}

	return record.WordEntry{Senses: mergeSamePOSSenses(senses)}
}

// mergeSamePOSSenses collapses senses sharing a POS into one (glosses
// deduplicated, insertion order preserved) and sorts the result by
// ascending POS discriminant for deterministic output.
func mergeSamePOSSenses(senses []record.Sense) []record.Sense {
	byPOS := make(map[record.PartOfSpeech]*record.Sense)
	order := make([]record.PartOfSpeech, 0, len(senses))

	for _, s := range senses {
		existing, ok := byPOS[s.POS]
		if !ok {
			cp := s
			cp.Glosses = append([]record.Gloss(nil), s.Glosses...)
			byPOS[s.POS] = &cp
			order = append(order, s.POS)

			continue
		}

		existing.Glosses = dedupeGlosses(append(existing.Glosses, s.Glosses...))
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]record.Sense, 0, len(order))
	for _, pos := range order {
		out = append(out, *byPOS[pos])
	}

	return out
}

func dedupeGlosses(glosses []record.Gloss) []record.Gloss {
	seen := make(map[string]bool, len(glosses))
	out := make([]record.Gloss, 0, len(glosses))

	for _, g := range glosses {
		key := joinGlossLines(g.GlossLines)
		if seen[key] {
			continue
		}

		seen[key] = true
		out = append(out, g)
	}

	return out
}

func joinGlossLines(lines []string) string {
	const sep = "\x00"

	total := 0
	for _, l := range lines {
		total += len(l) + 1
	}

	b := make([]byte, 0, total)
	for i, l := range lines {
		if i > 0 {
			b = append(b, sep...)
		}

		b = append(b, l...)
	}

	return string(b)
}

func unionRedirects(mono, eng []ingest.Word) []string {
	seen := make(map[string]bool)
	var out []string

	for _, words := range [][]ingest.Word{mono, eng} {
		for _, w := range words {
			for _, r := range w.Redirects {
				if seen[r] {
					continue
				}

				seen[r] = true
				out = append(out, r)
			}
		}
	}

	return out
}
