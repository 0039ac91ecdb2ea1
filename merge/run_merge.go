package merge

import (
	"container/heap"

	"github.com/DavidVentura/tarkka/record"
)

// cursor walks one decoded run's entries in order.
type cursor struct {
	entries []spilledEntry
	pos     int
}

func (c *cursor) peek() (spilledEntry, bool) {
	if c.pos >= len(c.entries) {
		return spilledEntry{}, false
	}

	return c.entries[c.pos], true
}

// runHeap orders cursor indices by their current entry's headword, so the
// smallest next word across every run is always at the root.
type runHeap struct {
	cursors []*cursor
	idx     []int
}

func (h runHeap) Len() int { return len(h.idx) }
func (h runHeap) Less(i, j int) bool {
	a, _ := h.cursors[h.idx[i]].peek()
	b, _ := h.cursors[h.idx[j]].peek()

	return a.word < b.word
}
func (h runHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *runHeap) Push(x any) { h.idx = append(h.idx, x.(int)) }
func (h *runHeap) Pop() any {
	old := h.idx
	n := len(old)
	x := old[n-1]
	h.idx = old[:n-1]

	return x
}

// mergeRuns k-way merges every run's entries into the final sorted,
// aggregated TaggedWord list, holding at most one decoded run per input
// run in memory at a time (mergeRuns itself decodes all runs up front,
// since the builder's total run count per language build is small; each
// run's own size is what the spill threshold bounds).
func mergeRuns(runs []run) ([]record.TaggedWord, error) {
	cursors := make([]*cursor, len(runs))

	for i, r := range runs {
		entries, err := readRun(r)
		if err != nil {
			return nil, err
		}

		cursors[i] = &cursor{entries: entries}
	}

	h := &runHeap{cursors: cursors}
	for i, c := range cursors {
		if _, ok := c.peek(); ok {
			h.idx = append(h.idx, i)
		}
	}
	heap.Init(h)

	var out []record.TaggedWord

	for h.Len() > 0 {
		top, _ := cursors[h.idx[0]].peek()
		word := top.word

		g := &group{}

		for h.Len() > 0 {
			ci := h.idx[0]
			c := cursors[ci]

			e, ok := c.peek()
			if !ok || e.word != word {
				break
			}

			if e.side == sideMono {
				g.mono = append(g.mono, e.val)
			} else {
				g.eng = append(g.eng, e.val)
			}

			c.pos++

			if _, ok := c.peek(); ok {
				heap.Fix(h, 0)
			} else {
				heap.Pop(h)
			}
		}

		out = append(out, aggregateOne(word, g))
	}

	return out, nil
}
