package urbaneats

import (
	"math"
	"sort"
	"strings"
)

// MaxVocabulary is the default cap on vocabulary size. When a corpus carries
// more distinct terms, the most document-frequent ones are kept.
const MaxVocabulary = 5000

// A TextVectorizer converts normalized text into fixed-dimension feature
// vectors. Fit builds the vocabulary from a training corpus exactly once;
// Transform reuses that frozen vocabulary forever after.
type TextVectorizer interface {
	Fit(docs []string) error
	Transform(text string) FeatureVector
}

// TFIDFVectorizer weights terms by term frequency times smoothed inverse
// document frequency over a vocabulary selected at fit time. The vocabulary
// and IDF weights never change after Fit: terms outside the vocabulary are
// ignored by Transform, never added.
type TFIDFVectorizer struct {
	MaxFeatures int

	vocabulary map[string]int
	idf        []float64
	fitted     bool
}

// NewTFIDFVectorizer returns an unfitted vectorizer. A maxFeatures of zero
// or less falls back to MaxVocabulary.
func NewTFIDFVectorizer(maxFeatures int) *TFIDFVectorizer {
	if maxFeatures <= 0 {
		maxFeatures = MaxVocabulary
	}
	return &TFIDFVectorizer{MaxFeatures: maxFeatures}
}

// Fit builds the vocabulary and IDF weights from a corpus of normalized
// documents. Each term is counted once per document; when the corpus has
// more distinct terms than MaxFeatures, the highest-document-frequency terms
// win (ties broken lexicographically, so fitting is deterministic). Fit may
// be called at most once per instance; a second call returns ErrAlreadyFit.
func (v *TFIDFVectorizer) Fit(docs []string) error {
	if v.fitted {
		return ErrAlreadyFit
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range strings.Fields(doc) {
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	total := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF: log((1+N)/(1+df)) + 1 keeps every fitted term's
		// weight strictly positive even when it appears in all documents.
		v.idf[i] = math.Log((1+total)/(1+float64(docFreq[term]))) + 1
	}
	v.fitted = true
	return nil
}

// Transform converts a normalized text into its TF-IDF vector using the
// fitted vocabulary. Terms absent from the vocabulary contribute nothing;
// text with no in-vocabulary terms yields the zero vector. Transform never
// mutates vectorizer state.
func (v *TFIDFVectorizer) Transform(text string) FeatureVector {
	dim := len(v.vocabulary)
	tokens := strings.Fields(text)
	if dim == 0 || len(tokens) == 0 {
		return FeatureVector{Dim: dim}
	}

	counts := make(map[int]float64)
	for _, term := range tokens {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	total := float64(len(tokens))
	for i, idx := range indices {
		values[i] = counts[idx] / total * v.idf[idx]
	}
	return FeatureVector{Indices: indices, Values: values, Dim: dim}
}

// FitTransform fits on docs and returns their vectors in one pass.
func (v *TFIDFVectorizer) FitTransform(docs []string) ([]FeatureVector, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	vectors := make([]FeatureVector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}
	return vectors, nil
}

// VocabularySize reports the number of terms in the fitted vocabulary.
func (v *TFIDFVectorizer) VocabularySize() int {
	return len(v.vocabulary)
}
