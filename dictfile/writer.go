package dictfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/DavidVentura/tarkka/codec"
	"github.com/DavidVentura/tarkka/errs"
	"github.com/DavidVentura/tarkka/internal/pool"
	"github.com/DavidVentura/tarkka/record"
	"github.com/DavidVentura/tarkka/seekzstd"
)

// CompileConcurrency bounds how many L1 groups are front-coded and
// payload-encoded concurrently in Write. Group encoding is independent,
// CPU-bound work (no shared state besides each group's own slice of
// words), so it parallelizes cleanly across groups.
const CompileConcurrency = 8

// WriteFile creates path and writes a complete .dict file to it. It does
// not check whether path already exists: the output-path no-op
// convention (skip languages whose file is already built) belongs to the
// build package's per-language job, not this lower-level assembly step.
func WriteFile(path string, words []record.TaggedWord, buildTime uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", errs.ErrIo, path, err)
	}

	if err := Write(f, words, buildTime); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	return f.Close()
}

// Write assembles a complete .dict file from words and writes it to w.
//
// words need not arrive pre-grouped; Write buckets them by their 3-byte
// L1 key itself and sorts both the bucket order (ascending key) and each
// bucket's words (ascending byte order), so callers only need to hand it
// the merge package's already-deduplicated, word-sorted output.
//
// buildTime is the header's build-timestamp field (seconds since epoch);
// callers supply it rather than Write calling a clock, keeping file
// assembly deterministic and testable.
func Write(w io.Writer, words []record.TaggedWord, buildTime uint64) error {
	groups, err := bucketAndSort(words)
	if err != nil {
		return err
	}

	l2Groups := make([][]byte, len(groups))
	payloadGroups := make([][]byte, len(groups))
	entries := make([]l1Entry, len(groups))

	sem := semaphore.NewWeighted(CompileConcurrency)
	g, gCtx := errgroup.WithContext(context.Background())

	for i, grp := range groups {
		i, grp := i, grp

		if err := sem.Acquire(gCtx, 1); err != nil {
			return err
		}

		g.Go(func() error {
			defer sem.Release(1)

			l2, payload, err := encodeGroup(grp.words)
			if err != nil {
				return fmt.Errorf("group %x: %w", grp.key, err)
			}

			l2Groups[i] = l2
			payloadGroups[i] = payload
			entries[i].key = grp.key
			entries[i].l2Size = uint32(len(l2))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var payloadOffset uint32
	for i, payload := range payloadGroups {
		entries[i].payloadOff = payloadOffset
		payloadOffset += uint32(len(payload))
	}

	var l2Len, payloadLen int
	for i := range groups {
		l2Len += len(l2Groups[i])
		payloadLen += len(payloadGroups[i])
	}

	h := header{
		l1Len:      uint32(len(entries) * l1EntrySize),
		l2Len:      uint32(l2Len),
		payloadLen: uint32(payloadLen),
		buildTime:  buildTime,
		version:    formatVersion,
	}

	if _, err := w.Write(h.encode()); err != nil {
		return fmt.Errorf("%w: writing header: %v", errs.ErrIo, err)
	}

	if _, err := w.Write(encodeL1(entries)); err != nil {
		return fmt.Errorf("%w: writing L1 directory: %v", errs.ErrIo, err)
	}

	sw, err := seekzstd.NewWriter(w)
	if err != nil {
		return err
	}

	var streamOffset int64

	for _, l2 := range l2Groups {
		streamOffset, err = sw.WriteFrame(streamOffset, l2)
		if err != nil {
			return err
		}
	}

	for _, payload := range payloadGroups {
		streamOffset, err = sw.WriteFrame(streamOffset, payload)
		if err != nil {
			return err
		}
	}

	return sw.Close()
}

type wordGroup struct {
	key   [3]byte
	words []record.TaggedWord
}

// bucketAndSort buckets words by their L1 key and returns the buckets in
// ascending key order, each bucket sorted by ascending word byte order.
// It fails with errs.ErrInvalidData on an empty word or a duplicate word
// within one bucket (the file format forbids two equal adjacent L2
// entries in a group).
func bucketAndSort(words []record.TaggedWord) ([]wordGroup, error) {
	index := make(map[[3]byte]int)
	var groups []wordGroup

	for _, tw := range words {
		if err := tw.Validate(); err != nil {
			return nil, err
		}

		key, err := groupKey(tw.Word)
		if err != nil {
			return nil, err
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, wordGroup{key: key})
		}

		groups[i].words = append(groups[i].words, tw)
	}

	sort.Slice(groups, func(i, j int) bool {
		return bytes.Compare(groups[i].key[:], groups[j].key[:]) < 0
	})

	for gi := range groups {
		g := groups[gi].words
		sort.Slice(g, func(i, j int) bool { return g[i].Word < g[j].Word })

		for i := 1; i < len(g); i++ {
			if g[i].Word == g[i-1].Word {
				return nil, fmt.Errorf("%w: duplicate word %q in one L1 group", errs.ErrInvalidData, g[i].Word)
			}
		}
	}

	return groups, nil
}

// encodeGroup front-codes one key-bucket's words into L2 directory bytes
// and concatenates their compact-codec payload bytes, in the same order.
func encodeGroup(words []record.TaggedWord) (l2, payload []byte, err error) {
	l2bb := pool.GetGroupBuffer()
	defer pool.PutGroupBuffer(l2bb)

	payloadBB := pool.GetGroupBuffer()
	defer pool.PutGroupBuffer(payloadBB)

	l2w := codec.NewWriter(l2bb)
	payloadW := codec.NewWriter(payloadBB)

	var prev string

	for _, tw := range words {
		shared := commonPrefixLen(prev, tw.Word)
		if shared > 127 {
			shared = 127
		}

		suffix := tw.Word[shared:]
		if len(suffix) == 0 || len(suffix) > 255 {
			return nil, nil, fmt.Errorf("%w: word %q has suffix length %d outside 1..255", errs.ErrInvalidData, tw.Word, len(suffix))
		}

		recordBB := pool.GetRecordBuffer()
		recW := codec.NewWriter(recordBB)

		if err := tw.Encode(recW); err != nil {
			pool.PutRecordBuffer(recordBB)
			return nil, nil, err
		}

		payloadSize := recW.Len()

		l2w.Uint8(uint8(shared))
		l2w.Uint8(uint8(len(suffix)))
		l2w.RawBytes([]byte(suffix))

		if err := l2w.Length(payloadSize, codec.TwoBytesVar); err != nil {
			pool.PutRecordBuffer(recordBB)
			return nil, nil, err
		}

		payloadW.RawBytes(recW.Bytes())
		pool.PutRecordBuffer(recordBB)

		prev = tw.Word
	}

	// Copy out of the pooled buffers: they are returned to the pool (and
	// may be reused by the next group) as soon as this function returns.
	l2 = append([]byte(nil), l2w.Bytes()...)
	payload = append([]byte(nil), payloadW.Bytes()...)

	return l2, payload, nil
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return i
}
