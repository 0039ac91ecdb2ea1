package record

import "fmt"

// PartOfSpeech is a closed, 1-byte-discriminant enum of the grammatical
// categories a Sense can carry. Values and string forms are fixed by the
// ingestion source vocabulary (kaikki.org/Wiktextract part-of-speech tags)
// and must never be renumbered once a .dict file has been built with them.
type PartOfSpeech uint8

const (
	PartOfSpeechAffix              PartOfSpeech = 1
	PartOfSpeechCombiningForm      PartOfSpeech = 2
	PartOfSpeechProverb            PartOfSpeech = 3
	PartOfSpeechPostp              PartOfSpeech = 4
	PartOfSpeechArticle            PartOfSpeech = 5
	PartOfSpeechInterfix           PartOfSpeech = 6
	PartOfSpeechInfix              PartOfSpeech = 7
	PartOfSpeechPunct              PartOfSpeech = 8
	PartOfSpeechParticle           PartOfSpeech = 9
	PartOfSpeechPrepPhrase         PartOfSpeech = 10
	PartOfSpeechCharacter          PartOfSpeech = 11
	PartOfSpeechDet                PartOfSpeech = 12
	PartOfSpeechConj               PartOfSpeech = 13
	PartOfSpeechNum                PartOfSpeech = 14
	PartOfSpeechSymbol             PartOfSpeech = 15
	PartOfSpeechPrep               PartOfSpeech = 16
	PartOfSpeechPron               PartOfSpeech = 17
	PartOfSpeechContraction        PartOfSpeech = 18
	PartOfSpeechPhrase             PartOfSpeech = 19
	PartOfSpeechSuffix             PartOfSpeech = 20
	PartOfSpeechPrefix             PartOfSpeech = 21
	PartOfSpeechIntj               PartOfSpeech = 22
	PartOfSpeechAdv                PartOfSpeech = 23
	PartOfSpeechName               PartOfSpeech = 24
	PartOfSpeechVerb                PartOfSpeech = 25
	PartOfSpeechAdj                PartOfSpeech = 26
	PartOfSpeechNoun                PartOfSpeech = 27
	PartOfSpeechClassifier          PartOfSpeech = 28
	PartOfSpeechUnknown             PartOfSpeech = 29
	PartOfSpeechAdjNoun             PartOfSpeech = 30
	PartOfSpeechRoot                PartOfSpeech = 31
	PartOfSpeechAbbrev              PartOfSpeech = 32
	PartOfSpeechCounter             PartOfSpeech = 33
	PartOfSpeechOnomatopoeia        PartOfSpeech = 34
	PartOfSpeechRomanization        PartOfSpeech = 35
	PartOfSpeechSoftRedirect        PartOfSpeech = 36
	PartOfSpeechCircumfix           PartOfSpeech = 37
	PartOfSpeechTypographicVariant  PartOfSpeech = 38
	PartOfSpeechParticiple          PartOfSpeech = 39
	PartOfSpeechCircumpos           PartOfSpeech = 40
	PartOfSpeechAdvPhrase           PartOfSpeech = 41
	PartOfSpeechStem                PartOfSpeech = 42
	PartOfSpeechAdjPhrase           PartOfSpeech = 43
	PartOfSpeechAdnominal           PartOfSpeech = 44
	PartOfSpeechSyllable            PartOfSpeech = 45
	PartOfSpeechGerund              PartOfSpeech = 46
)

var partOfSpeechNames = map[PartOfSpeech]string{
	PartOfSpeechAffix:             "affix",
	PartOfSpeechCombiningForm:     "combining_form",
	PartOfSpeechProverb:           "proverb",
	PartOfSpeechPostp:             "postp",
	PartOfSpeechArticle:           "article",
	PartOfSpeechInterfix:          "interfix",
	PartOfSpeechInfix:             "infix",
	PartOfSpeechPunct:             "punct",
	PartOfSpeechParticle:          "particle",
	PartOfSpeechPrepPhrase:        "prep_phrase",
	PartOfSpeechCharacter:         "character",
	PartOfSpeechDet:               "det",
	PartOfSpeechConj:              "conj",
	PartOfSpeechNum:               "num",
	PartOfSpeechSymbol:            "symbol",
	PartOfSpeechPrep:              "prep",
	PartOfSpeechPron:              "pron",
	PartOfSpeechContraction:       "contraction",
	PartOfSpeechPhrase:            "phrase",
	PartOfSpeechSuffix:            "suffix",
	PartOfSpeechPrefix:            "prefix",
	PartOfSpeechIntj:              "intj",
	PartOfSpeechAdv:               "adv",
	PartOfSpeechName:              "name",
	PartOfSpeechVerb:              "verb",
	PartOfSpeechAdj:               "adj",
	PartOfSpeechNoun:              "noun",
	PartOfSpeechClassifier:        "classifier",
	PartOfSpeechUnknown:           "unknown",
	PartOfSpeechAdjNoun:           "adj_noun",
	PartOfSpeechRoot:              "root",
	PartOfSpeechAbbrev:            "abbrev",
	PartOfSpeechCounter:           "counter",
	PartOfSpeechOnomatopoeia:      "onomatopoeia",
	PartOfSpeechRomanization:      "romanization",
	PartOfSpeechSoftRedirect:      "soft-redirect",
	PartOfSpeechCircumfix:         "circumfix",
	PartOfSpeechTypographicVariant: "typographic variant",
	PartOfSpeechParticiple:        "participle",
	PartOfSpeechCircumpos:         "circumpos",
	PartOfSpeechAdvPhrase:         "adv_phrase",
	PartOfSpeechStem:              "stem",
	PartOfSpeechAdjPhrase:         "adj_phrase",
	PartOfSpeechAdnominal:         "adnominal",
	PartOfSpeechSyllable:          "syllable",
	PartOfSpeechGerund:            "gerund",
}

// partOfSpeechAliases maps source-vocabulary spelling variants onto the
// canonical tag. Two kaikki tags collapse onto one PartOfSpeech each:
// "interj" onto Intj and "onomatopeia" onto Onomatopoeia.
var partOfSpeechAliases = map[string]PartOfSpeech{
	"interj":      PartOfSpeechIntj,
	"onomatopeia": PartOfSpeechOnomatopoeia,
}

var partOfSpeechByName map[string]PartOfSpeech

func init() {
	partOfSpeechByName = make(map[string]PartOfSpeech, len(partOfSpeechNames)+len(partOfSpeechAliases))
	for pos, name := range partOfSpeechNames {
		partOfSpeechByName[name] = pos
	}
	for alias, pos := range partOfSpeechAliases {
		partOfSpeechByName[alias] = pos
	}
}

// String returns the canonical kaikki-vocabulary spelling of pos.
func (pos PartOfSpeech) String() string {
	if name, ok := partOfSpeechNames[pos]; ok {
		return name
	}

	return fmt.Sprintf("PartOfSpeech(%d)", uint8(pos))
}

// ParsePartOfSpeech maps a source vocabulary tag (e.g. "noun", "adj_phrase")
// onto its PartOfSpeech value. It returns false for any tag outside the
// closed 46-member vocabulary; callers (the ingest package) decide whether
// an unrecognized tag drops the sense or fails the build.
func ParsePartOfSpeech(tag string) (PartOfSpeech, bool) {
	pos, ok := partOfSpeechByName[tag]
	return pos, ok
}

// IsValid reports whether pos is one of the 46 declared discriminants.
func (pos PartOfSpeech) IsValid() bool {
	_, ok := partOfSpeechNames[pos]
	return ok
}
