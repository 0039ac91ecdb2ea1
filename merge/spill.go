package merge

import (
	"fmt"
	"os"
	"sort"

	"github.com/DavidVentura/tarkka/codec"
	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/format"
	"github.com/DavidVentura/tarkka/ingest"
	"github.com/DavidVentura/tarkka/internal/pool"
	"github.com/DavidVentura/tarkka/record"

	"github.com/DavidVentura/tarkka/compress"
)

// sideMono and sideEng tag a spill record with which source side it came
// from, so a run can interleave both sides and still reconstruct group.mono
///group.eng on read-back.
const (
	sideMono uint8 = 1
	sideEng  uint8 = 2
)

// encodeSpillRecord writes one ingest.Word plus its side tag using the
// same compact-codec primitives the on-disk record schema uses. This is
// an internal spill wire format, not part of the .dict file format: it
// never appears outside a run file that this process both writes and
// reads back before exiting.
func encodeSpillRecord(w *codec.Writer, side uint8, word ingest.Word) error {
	w.Uint8(side)

	if err := w.String(word.Word); err != nil {
		return err
	}

	if err := word.Entry.Encode(w); err != nil {
		return err
	}

	if err := w.OptionalString(word.Sound); err != nil {
		return err
	}

	if err := w.Length(len(word.Hyphenations), codec.OneByte); err != nil {
		return err
	}

	for _, h := range word.Hyphenations {
		if err := w.String(h); err != nil {
			return err
		}
	}

	if err := w.Length(len(word.Redirects), codec.OneByte); err != nil {
		return err
	}

	for _, rd := range word.Redirects {
		if err := w.String(rd); err != nil {
			return err
		}
	}

	return nil
}

func decodeSpillRecord(r *codec.Reader) (uint8, ingest.Word, error) {
	side, err := r.Uint8()
	if err != nil {
		return 0, ingest.Word{}, err
	}

	word, err := r.String()
	if err != nil {
		return 0, ingest.Word{}, err
	}

	entry, err := record.DecodeWordEntry(r)
	if err != nil {
		return 0, ingest.Word{}, err
	}

	sound, err := r.OptionalString()
	if err != nil {
		return 0, ingest.Word{}, err
	}

	hn, err := r.Length(codec.OneByte)
	if err != nil {
		return 0, ingest.Word{}, err
	}

	hyph := make([]string, hn)
	for i := range hyph {
		hyph[i], err = r.String()
		if err != nil {
			return 0, ingest.Word{}, err
		}
	}

	rn, err := r.Length(codec.OneByte)
	if err != nil {
		return 0, ingest.Word{}, err
	}

	redirects := make([]string, rn)
	for i := range redirects {
		redirects[i], err = r.String()
		if err != nil {
			return 0, ingest.Word{}, err
		}
	}

	return side, ingest.Word{
		Word:         word,
		Entry:        entry,
		Sound:        sound,
		Hyphenations: hyph,
		Redirects:    redirects,
	}, nil
}

// spilledEntry is one decoded spill record paired with its headword, used
// while sorting a batch before it is written out as a run.
type spilledEntry struct {
	word string
	side uint8
	val  ingest.Word
}

// run is one spilled, sorted, compressed batch on disk.
type run struct {
	path  string
	codec format.CompressionType
}

// writeRun sorts entries by headword and writes them, compressed, to a
// new temp file under dir.
func writeRun(dir string, codecType format.CompressionType, entries []spilledEntry) (run, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].word < entries[j].word })

	bb := pool.GetGroupBuffer()
	defer pool.PutGroupBuffer(bb)

	w := codec.NewWriter(bb)

	if err := w.Length(len(entries), codec.TwoBytes); err != nil {
		return run{}, err
	}

	for _, e := range entries {
		if err := encodeSpillRecord(w, e.side, e.val); err != nil {
			return run{}, err
		}
	}

	cdc, err := compress.CreateCodec(codecType, "spill run")
	if err != nil {
		return run{}, err
	}

	compressed, err := cdc.Compress(w.Bytes())
	if err != nil {
		return run{}, fmt.Errorf("%w: compressing spill run: %v", errs.ErrIo, err)
	}

	f, err := os.CreateTemp(dir, "tarkka-spill-*.run")
	if err != nil {
		return run{}, fmt.Errorf("%w: creating spill run file: %v", errs.ErrIo, err)
	}
	defer f.Close()

	if _, err := f.Write(compressed); err != nil {
		return run{}, fmt.Errorf("%w: writing spill run file: %v", errs.ErrIo, err)
	}

	return run{path: f.Name(), codec: codecType}, nil
}

// readRun decompresses and decodes an entire run back into memory. Each
// run holds at most one batch (the builder's spill threshold) of records;
// mergeRuns calls readRun for every run before merging, so all runs are in
// memory together.
func readRun(r run) ([]spilledEntry, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading spill run file: %v", errs.ErrIo, err)
	}

	cdc, err := compress.CreateCodec(r.codec, "spill run")
	if err != nil {
		return nil, err
	}

	decompressed, err := cdc.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing spill run: %v", errs.ErrIo, err)
	}

	cr := codec.NewReader(decompressed)

	n, err := cr.Length(codec.TwoBytes)
	if err != nil {
		return nil, err
	}

	out := make([]spilledEntry, n)
	for i := range out {
		side, val, err := decodeSpillRecord(cr)
		if err != nil {
			return nil, err
		}

		out[i] = spilledEntry{word: val.Word, side: side, val: val}
	}

	return out, nil
}

func removeRuns(runs []run) {
	for _, r := range runs {
		os.Remove(r.path)
	}
}
