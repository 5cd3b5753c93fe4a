package urbaneats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/bbalet/stopwords"
)

var nonWordPattern = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// A Normalizer turns raw review text into a canonical token string:
// lowercased, stripped of non-word characters, stopword-filtered, and
// lemmatized. Normalization is deterministic and has no side effects, so a
// single Normalizer is safe for concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer builds a Normalizer backed by the English lemma dictionary.
func NewNormalizer() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading lemma dictionary: %w", err)
	}
	return &Normalizer{lemmatizer: lem}, nil
}

// Normalize runs the full pipeline and joins the surviving tokens with
// single spaces. Text that normalizes to zero tokens yields the empty
// string; downstream callers must tolerate the resulting zero feature
// vector.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized token sequence for text. Steps, in order:
// lowercase, replace every character outside [A-Za-z0-9_] with a space,
// split on whitespace, drop English stopwords, lemmatize each survivor.
func (n *Normalizer) Tokens(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	var out []string
	for _, word := range strings.Fields(cleaned) {
		if isStopword(word) {
			continue
		}
		out = append(out, n.lemmatizer.Lemma(word))
	}
	return out
}

// isStopword probes the stopwords library one word at a time: the library
// does not export its word lists, but CleanString empties a lone stopword.
// Letterless tokens (numbers) are never stopwords; the library's word
// segmenter would discard them outright.
func isStopword(word string) bool {
	if strings.IndexFunc(word, unicode.IsLetter) == -1 {
		return false
	}
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}
