// Package record defines the typed entities written to and read from a
// .dict payload stream, and their compact-codec encode/decode methods.
//
// Every type here maps directly to a row in the DATA MODEL: Gloss, Sense,
// WordEntry, WordTag and TaggedWord. Encode/Decode methods are hand-written
// rather than derived (the teacher's Rust original uses a derive macro;
// Go has no equivalent here) but follow the same field-order-is-wire-order
// discipline, so the codec package's primitives are the only place wire
// layout decisions live.
package record

import (
	"fmt"

	"github.com/DavidVentura/tarkka/codec"
	"github.com/DavidVentura/tarkka/errs"
)

// maxVecLen is the OneByte length category ceiling shared by every
// vector field in this schema (gloss_lines, glosses, senses, entries,
// hyphenations, redirects).
const maxVecLen = 255

// Gloss is one definition text split into lines.
type Gloss struct {
	GlossLines []string
}

// Encode writes g under the OneByte vector-of-string category.
func (g Gloss) Encode(w *codec.Writer) error {
	if len(g.GlossLines) > maxVecLen {
		return fmt.Errorf("%w: gloss has %d lines, max %d", errs.ErrInvalidData, len(g.GlossLines), maxVecLen)
	}

	if err := w.Length(len(g.GlossLines), codec.OneByte); err != nil {
		return err
	}

	for _, line := range g.GlossLines {
		if err := w.String(line); err != nil {
			return err
		}
	}

	return nil
}

// DecodeGloss reads a Gloss from r.
func DecodeGloss(r *codec.Reader) (Gloss, error) {
	n, err := r.Length(codec.OneByte)
	if err != nil {
		return Gloss{}, err
	}

	lines := make([]string, n)
	for i := range lines {
		lines[i], err = r.String()
		if err != nil {
			return Gloss{}, err
		}
	}

	return Gloss{GlossLines: lines}, nil
}

// Sense holds the senses of one part of speech for one headword.
type Sense struct {
	POS     PartOfSpeech
	Glosses []Gloss
}

// Encode writes s: a one-byte POS discriminant, then a OneByte vector of Gloss.
func (s Sense) Encode(w *codec.Writer) error {
	if !s.POS.IsValid() {
		return fmt.Errorf("%w: unknown part-of-speech discriminant %d", errs.ErrInvalidData, uint8(s.POS))
	}

	if len(s.Glosses) > maxVecLen {
		return fmt.Errorf("%w: sense has %d glosses, max %d", errs.ErrInvalidData, len(s.Glosses), maxVecLen)
	}

	w.Uint8(uint8(s.POS))

	if err := w.Length(len(s.Glosses), codec.OneByte); err != nil {
		return err
	}

	for _, g := range s.Glosses {
		if err := g.Encode(w); err != nil {
			return err
		}
	}

	return nil
}

// DecodeSense reads a Sense from r.
func DecodeSense(r *codec.Reader) (Sense, error) {
	tag, err := r.Uint8()
	if err != nil {
		return Sense{}, err
	}

	pos := PartOfSpeech(tag)
	if !pos.IsValid() {
		return Sense{}, fmt.Errorf("%w: unknown part-of-speech discriminant %d", errs.ErrInvalidData, tag)
	}

	n, err := r.Length(codec.OneByte)
	if err != nil {
		return Sense{}, err
	}

	glosses := make([]Gloss, n)
	for i := range glosses {
		glosses[i], err = DecodeGloss(r)
		if err != nil {
			return Sense{}, err
		}
	}

	return Sense{POS: pos, Glosses: glosses}, nil
}

// WordEntry is one source-perspective record for a headword: at most one
// Sense per distinct POS, ordered by ascending POS discriminant.
type WordEntry struct {
	Senses []Sense
}

// Encode writes e as a OneByte vector of Sense.
func (e WordEntry) Encode(w *codec.Writer) error {
	if len(e.Senses) > maxVecLen {
		return fmt.Errorf("%w: word entry has %d senses, max %d", errs.ErrInvalidData, len(e.Senses), maxVecLen)
	}

	if err := w.Length(len(e.Senses), codec.OneByte); err != nil {
		return err
	}

	for _, s := range e.Senses {
		if err := s.Encode(w); err != nil {
			return err
		}
	}

	return nil
}

// DecodeWordEntry reads a WordEntry from r.
func DecodeWordEntry(r *codec.Reader) (WordEntry, error) {
	n, err := r.Length(codec.OneByte)
	if err != nil {
		return WordEntry{}, err
	}

	senses := make([]Sense, n)
	for i := range senses {
		senses[i], err = DecodeSense(r)
		if err != nil {
			return WordEntry{}, err
		}
	}

	return WordEntry{Senses: senses}, nil
}

// WordTag identifies which source(s) contributed a TaggedWord's entries.
type WordTag uint8

const (
	// WordTagMonolingual means entries[0] is the only entry, sourced
	// from the monolingual wiktionary edition.
	WordTagMonolingual WordTag = 1
	// WordTagEnglish means entries[0] is the only entry, sourced from
	// the English-language wiktionary edition describing this headword.
	WordTagEnglish WordTag = 2
	// WordTagBoth means entries[0] is monolingual and entries[1] is
	// English: the headword exists in both sources.
	WordTagBoth WordTag = 3
)

// IsValid reports whether t is one of the three declared discriminants.
func (t WordTag) IsValid() bool {
	switch t {
	case WordTagMonolingual, WordTagEnglish, WordTagBoth:
		return true
	default:
		return false
	}
}

func (t WordTag) String() string {
	switch t {
	case WordTagMonolingual:
		return "monolingual"
	case WordTagEnglish:
		return "english"
	case WordTagBoth:
		return "both"
	default:
		return fmt.Sprintf("WordTag(%d)", uint8(t))
	}
}

// TaggedWord is the on-disk headword record. Word itself is not part of
// the encoded payload (it is a #[skip] field in schema terms): the
// dictfile package knows the headword from the L2 directory entry it
// decoded to locate this payload, and fills Word in after Decode returns.
type TaggedWord struct {
	Tag          WordTag
	Word         string
	Entries      []WordEntry
	Sounds       *string
	Hyphenations []string
	Redirects    []string
}

// Validate checks the invariants Encode and the merge package both rely on:
// entries.len matches Tag, Word is non-empty, ≤255 bytes, and contains
// neither an ASCII space nor U+FF0C (ideographic comma).
func (w TaggedWord) Validate() error {
	if !w.Tag.IsValid() {
		return fmt.Errorf("%w: unknown word tag discriminant %d", errs.ErrInvalidData, uint8(w.Tag))
	}

	wantEntries := 1
	if w.Tag == WordTagBoth {
		wantEntries = 2
	}

	if len(w.Entries) != wantEntries {
		return fmt.Errorf("%w: tag %s requires %d entries, got %d", errs.ErrInvalidData, w.Tag, wantEntries, len(w.Entries))
	}

	if w.Word == "" {
		return errs.ErrEmptyWord
	}

	if len(w.Word) > 255 {
		return fmt.Errorf("%w: %q is %d bytes", errs.ErrWordTooLong, w.Word, len(w.Word))
	}

	for _, r := range w.Word {
		if r == ' ' || r == '，' {
			return fmt.Errorf("%w: word %q contains a forbidden separator rune", errs.ErrInvalidData, w.Word)
		}
	}

	return nil
}

// Encode writes w's payload fields (everything but Word) in schema order.
func (w TaggedWord) Encode(cw *codec.Writer) error {
	if err := w.Validate(); err != nil {
		return err
	}

	cw.Uint8(uint8(w.Tag))

	if err := cw.Length(len(w.Entries), codec.OneByte); err != nil {
		return err
	}

	for _, e := range w.Entries {
		if err := e.Encode(cw); err != nil {
			return err
		}
	}

	if err := cw.OptionalString(w.Sounds); err != nil {
		return err
	}

	if len(w.Hyphenations) > maxVecLen {
		return fmt.Errorf("%w: %d hyphenations, max %d", errs.ErrInvalidData, len(w.Hyphenations), maxVecLen)
	}

	if err := cw.Length(len(w.Hyphenations), codec.OneByte); err != nil {
		return err
	}

	for _, h := range w.Hyphenations {
		if err := cw.String(h); err != nil {
			return err
		}
	}

	if len(w.Redirects) > maxVecLen {
		return fmt.Errorf("%w: %d redirects, max %d", errs.ErrInvalidData, len(w.Redirects), maxVecLen)
	}

	if err := cw.Length(len(w.Redirects), codec.OneByte); err != nil {
		return err
	}

	for _, rd := range w.Redirects {
		if err := cw.String(rd); err != nil {
			return err
		}
	}

	return nil
}

// DecodeTaggedWord reads a TaggedWord's payload fields from r and sets
// Word to word (the #[skip] field, supplied by the caller from the L2
// directory entry rather than the wire).
func DecodeTaggedWord(r *codec.Reader, word string) (TaggedWord, error) {
	tag, err := r.Uint8()
	if err != nil {
		return TaggedWord{}, err
	}

	w := TaggedWord{Tag: WordTag(tag), Word: word}
	if !w.Tag.IsValid() {
		return TaggedWord{}, fmt.Errorf("%w: unknown word tag discriminant %d", errs.ErrInvalidData, tag)
	}

	n, err := r.Length(codec.OneByte)
	if err != nil {
		return TaggedWord{}, err
	}

	w.Entries = make([]WordEntry, n)
	for i := range w.Entries {
		w.Entries[i], err = DecodeWordEntry(r)
		if err != nil {
			return TaggedWord{}, err
		}
	}

	w.Sounds, err = r.OptionalString()
	if err != nil {
		return TaggedWord{}, err
	}

	hn, err := r.Length(codec.OneByte)
	if err != nil {
		return TaggedWord{}, err
	}

	if hn > 0 {
		w.Hyphenations = make([]string, hn)
	}
	for i := range w.Hyphenations {
		w.Hyphenations[i], err = r.String()
		if err != nil {
			return TaggedWord{}, err
		}
	}

	rn, err := r.Length(codec.OneByte)
	if err != nil {
		return TaggedWord{}, err
	}

	if rn > 0 {
		w.Redirects = make([]string, rn)
	}
	for i := range w.Redirects {
		w.Redirects[i], err = r.String()
		if err != nil {
			return TaggedWord{}, err
		}
	}

	return w, nil
}
