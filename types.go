package urbaneats

import "errors"

// A Review is a single restaurant review as read from the corpus: the raw
// text and the 1-5 star rating the reviewer gave. Reviews are immutable once
// read.
type Review struct {
	Text  string `json:"text"`
	Stars int    `json:"stars"`
}

// SentimentLabel is one of the five ordered sentiment categories a review
// can be classified into.
type SentimentLabel string

const (
	VeryNegative SentimentLabel = "very_negative"
	Negative     SentimentLabel = "negative"
	Neutral      SentimentLabel = "neutral"
	Positive     SentimentLabel = "positive"
	VeryPositive SentimentLabel = "very_positive"
)

// Labels lists the five sentiment categories in ascending order. The slice
// index of a label is its class index everywhere in this package; its
// sentiment score is index-2.
var Labels = [5]SentimentLabel{VeryNegative, Negative, Neutral, Positive, VeryPositive}

// A ScoredReview is the full serving result for one review: the predicted
// label, its integer score, the subjectivity estimate for the raw text, and
// the blended adjusted aggregate score. Computed per request, never stored.
type ScoredReview struct {
	Review
	Label          SentimentLabel `json:"sentiment_label"`
	SentimentScore int            `json:"sentiment_score"`
	Subjectivity   float64        `json:"subjectivity"`
	AdjustedScore  float64        `json:"adjusted_aggregate_score"`
}

// A FeatureVector is a sparse fixed-dimension numeric representation of a
// normalized text. Indices are strictly increasing positions into the fitted
// vocabulary; absent indices are zero.
type FeatureVector struct {
	Indices []int
	Values  []float64
	Dim     int
}

var (
	// ErrInvalidStars reports a star rating outside 1..5.
	ErrInvalidStars = errors.New("star rating must be between 1 and 5")

	// ErrAlreadyFit reports a second Fit on an already-fitted vectorizer or
	// classifier. Vocabulary and weights are frozen after the first fit.
	ErrAlreadyFit = errors.New("already fitted")

	// ErrNotFit reports use of a vectorizer or classifier before Fit.
	ErrNotFit = errors.New("not fitted")

	// ErrModelFormat reports a persisted artifact whose format version does
	// not match this package, or whose contents are internally inconsistent.
	ErrModelFormat = errors.New("incompatible model format")
)
