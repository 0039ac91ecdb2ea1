package merge

import (
	"github.com/DavidVentura/tarkka/format"
	"github.com/DavidVentura/tarkka/ingest"
	"github.com/DavidVentura/tarkka/record"
)

// Options controls the external-merge-sort spill strategy. The zero value
// is safe to use directly and disables spilling (SpillThreshold <= 0).
type Options struct {
	// SpillThreshold is the number of distinct source records buffered in
	// memory before they are sorted and flushed to a compressed run file.
	// Zero or negative disables spilling: Build aggregates entirely in
	// memory, which is fine for any single language's corpus in practice
	// but is what large-memory callers should override.
	SpillThreshold int

	// SpillDir is the directory run files are created in. Empty uses the
	// OS default temp directory.
	SpillDir string

	// SpillCodec selects the compression codec applied to each run file.
	// Defaults to format.CompressionLZ4 when zero-valued, matching the
	// low-latency-over-ratio tradeoff a build-time scratch file wants.
	SpillCodec format.CompressionType
}

// DefaultOptions returns in-memory-only aggregation: appropriate for every
// language this project ships a dictionary for, per the supported
// language list's corpus sizes.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) spillCodec() format.CompressionType {
	if o.SpillCodec == 0 {
		return format.CompressionLZ4
	}

	return o.SpillCodec
}

// Build merges a language's monolingual and English ingest.Word streams
// into the final sorted, tag-assigned, deduplicated TaggedWord list the
// dictfile writer consumes.
//
// Multiple records for the same headword on one source side are expected
// (kaikki emits one line per word/POS combination) and are merged by
// groupWords/aggregateGroups, not rejected: a headword's final entry
// carries every POS the source side contributed.
//
// When opts.SpillThreshold is positive, Build spills sorted batches to
// disk instead of growing one map over all records, then k-way merges
// them. This does not lower peak memory: the input slices stay in memory,
// and every run is decoded back into memory before the merge.
func Build(monolingual, english []ingest.Word, opts Options) ([]record.TaggedWord, error) {
	if opts.SpillThreshold <= 0 {
		groups := make(map[string]*group)
		groupWords(groups, monolingual, func(g *group) *[]ingest.Word { return &g.mono })
		groupWords(groups, english, func(g *group) *[]ingest.Word { return &g.eng })

		return aggregateGroups(groups), nil
	}

	return buildWithSpill(monolingual, english, opts)
}

// buildWithSpill batches monolingual then english words into sorted,
// compressed run files, then k-way merges the runs.
func buildWithSpill(monolingual, english []ingest.Word, opts Options) ([]record.TaggedWord, error) {
	var runs []run

	flush := func(batch []spilledEntry) error {
		if len(batch) == 0 {
			return nil
		}

		r, err := writeRun(opts.SpillDir, opts.spillCodec(), batch)
		if err != nil {
			removeRuns(runs)
			return err
		}

		runs = append(runs, r)

		return nil
	}

	var batch []spilledEntry

	appendSide := func(words []ingest.Word, side uint8) error {
		for _, w := range words {
			batch = append(batch, spilledEntry{word: w.Word, side: side, val: w})

			if len(batch) >= opts.SpillThreshold {
				if err := flush(batch); err != nil {
					return err
				}

				batch = nil
			}
		}

		return nil
	}

	if err := appendSide(monolingual, sideMono); err != nil {
		return nil, err
	}

	if err := appendSide(english, sideEng); err != nil {
		return nil, err
	}

	if err := flush(batch); err != nil {
		return nil, err
	}

	defer removeRuns(runs)

	return mergeRuns(runs)
}
