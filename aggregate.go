package urbaneats

// AggregateScore blends a predicted sentiment score s in {-2..2}, a star
// rating r in [1,5], and a subjectivity estimate u in [0,1] into one
// adjusted aggregate score in roughly [-2,2]:
//
//	normalizedStar = r - 3
//	weight         = 1-u if s > 0, else 1
//	adjusted       = (s*weight + normalizedStar) / 2
//
// The star rating is taken as ground truth centered at neutral (3 stars).
// Only positive predictions are discounted by subjectivity: opinionated
// language is a less trustworthy positive signal, while negative and neutral
// predictions pass through at full weight. The asymmetry is intentional.
func AggregateScore(sentimentScore int, stars int, subjectivity float64) float64 {
	normalizedStar := float64(stars - 3)
	weight := 1.0
	if sentimentScore > 0 {
		weight = 1 - subjectivity
	}
	return (float64(sentimentScore)*weight + normalizedStar) / 2
}
