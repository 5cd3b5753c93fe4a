package urbaneats

import "fmt"

// A ReviewScorer is the serving pipeline: it bundles the normalizer, a
// loaded model, and a subjectivity scorer, constructed once and read-only
// thereafter. Score calls share no mutable state, so one ReviewScorer may
// serve concurrent requests.
type ReviewScorer struct {
	normalizer   *Normalizer
	model        *TrainedModel
	subjectivity SubjectivityScorer
}

// NewReviewScorer assembles a serving pipeline around a trained model.
func NewReviewScorer(model *TrainedModel, normalizer *Normalizer, subjectivity SubjectivityScorer) *ReviewScorer {
	return &ReviewScorer{
		normalizer:   normalizer,
		model:        model,
		subjectivity: subjectivity,
	}
}

// Score classifies one review and blends the prediction with its star
// rating and subjectivity into the adjusted aggregate score. Subjectivity is
// estimated on the raw text, before normalization strips the punctuation and
// stopwords the lexicon relies on. Stars outside 1..5 fail with
// ErrInvalidStars.
func (rs *ReviewScorer) Score(text string, stars int) (ScoredReview, error) {
	if _, err := LabelFromStars(stars); err != nil {
		return ScoredReview{}, fmt.Errorf("scoring review: %w", err)
	}

	label := rs.model.Predict(rs.normalizer.Normalize(text))
	sentimentScore := label.Score()
	subjectivity := rs.subjectivity.Subjectivity(text)

	return ScoredReview{
		Review:         Review{Text: text, Stars: stars},
		Label:          label,
		SentimentScore: sentimentScore,
		Subjectivity:   subjectivity,
		AdjustedScore:  AggregateScore(sentimentScore, stars, subjectivity),
	}, nil
}
