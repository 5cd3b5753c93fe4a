package urbaneats

import "fmt"

// LabelFromStars maps a star rating onto its sentiment category:
// 1=VeryNegative, 2=Negative, 3=Neutral, 4=Positive, 5=VeryPositive.
// Any rating outside 1..5 is a contract violation and returns
// ErrInvalidStars; it is never coerced to a nearby value.
func LabelFromStars(stars int) (SentimentLabel, error) {
	if stars < 1 || stars > 5 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidStars, stars)
	}
	return Labels[stars-1], nil
}

// Score returns the integer sentiment score for the label, from -2
// (VeryNegative) to +2 (VeryPositive). Unknown labels score 0.
func (l SentimentLabel) Score() int {
	for i, known := range Labels {
		if known == l {
			return i - 2
		}
	}
	return 0
}

// classIndex returns the label's position in Labels, or -1 for an unknown
// label.
func classIndex(l SentimentLabel) int {
	for i, known := range Labels {
		if known == l {
			return i
		}
	}
	return -1
}
