package urbaneats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const numClasses = len(Labels)

// A SentimentClassifier learns to map feature vectors onto the five
// sentiment categories. Fit reports whether the optimizer converged within
// its iteration budget; a false return is a warning, not an error, and the
// model is usable, just under-fit.
type SentimentClassifier interface {
	Fit(samples []FeatureVector, labels []SentimentLabel) (converged bool, err error)
	Predict(v FeatureVector) SentimentLabel
	Evaluate(samples []FeatureVector, labels []SentimentLabel) Evaluation
}

// SoftmaxClassifier is a multinomial logistic regression classifier trained
// by full-batch gradient descent on L2-regularized cross-entropy loss.
type SoftmaxClassifier struct {
	Iterations   int     // optimizer iteration budget
	LearningRate float64 // gradient step size
	L2           float64 // regularization strength (bias excluded)
	Tolerance    float64 // max weight delta below which training stops

	weights *mat.Dense // numClasses x (dim+1); the last column is the bias
	dim     int
	fitted  bool
}

// NewSoftmaxClassifier returns an untrained classifier with the default
// optimizer settings.
func NewSoftmaxClassifier() *SoftmaxClassifier {
	return &SoftmaxClassifier{
		Iterations:   200,
		LearningRate: 0.5,
		L2:           1e-4,
		Tolerance:    1e-4,
	}
}

// Fit trains the weight matrix on the given sample/label pairs. It returns
// whether the optimizer converged within Iterations; when it did not, the
// best-effort weights are kept and remain usable. Fitting twice returns
// ErrAlreadyFit: weights are frozen after the first fit.
func (c *SoftmaxClassifier) Fit(samples []FeatureVector, labels []SentimentLabel) (bool, error) {
	if c.fitted {
		return false, ErrAlreadyFit
	}
	if len(samples) == 0 {
		return false, fmt.Errorf("training: empty sample set")
	}
	if len(samples) != len(labels) {
		return false, fmt.Errorf("training: %d samples but %d labels", len(samples), len(labels))
	}

	dim := samples[0].Dim
	targets := make([]int, len(labels))
	for i, label := range labels {
		idx := classIndex(label)
		if idx < 0 {
			return false, fmt.Errorf("training: unknown label %q at sample %d", label, i)
		}
		targets[i] = idx
		if samples[i].Dim != dim {
			return false, fmt.Errorf("training: sample %d has dimension %d, want %d", i, samples[i].Dim, dim)
		}
		for _, featIdx := range samples[i].Indices {
			if featIdx < 0 || featIdx >= dim {
				return false, fmt.Errorf("training: sample %d has feature index %d outside dimension %d", i, featIdx, dim)
			}
		}
	}

	c.dim = dim
	c.weights = mat.NewDense(numClasses, dim+1, nil)
	grad := mat.NewDense(numClasses, dim+1, nil)
	invN := 1.0 / float64(len(samples))
	converged := false

	for iter := 0; iter < c.Iterations; iter++ {
		grad.Zero()

		for i, sample := range samples {
			probs := c.probabilities(sample)
			for class := 0; class < numClasses; class++ {
				residual := probs[class]
				if class == targets[i] {
					residual -= 1
				}
				for k, idx := range sample.Indices {
					grad.Set(class, idx, grad.At(class, idx)+residual*sample.Values[k])
				}
				grad.Set(class, dim, grad.At(class, dim)+residual)
			}
		}

		maxDelta := 0.0
		for class := 0; class < numClasses; class++ {
			for j := 0; j <= dim; j++ {
				g := grad.At(class, j) * invN
				if j < dim {
					g += c.L2 * c.weights.At(class, j)
				}
				delta := c.LearningRate * g
				if math.Abs(delta) > maxDelta {
					maxDelta = math.Abs(delta)
				}
				c.weights.Set(class, j, c.weights.At(class, j)-delta)
			}
		}

		if maxDelta < c.Tolerance {
			converged = true
			break
		}
	}

	c.fitted = true
	return converged, nil
}

// Predict returns the most probable sentiment label for v. A zero vector is
// a legal degenerate input: scoring then reduces to the bias weights, which
// encode the training class priors.
func (c *SoftmaxClassifier) Predict(v FeatureVector) SentimentLabel {
	probs := c.probabilities(v)
	return Labels[floats.MaxIdx(probs)]
}

// probabilities computes the softmax class distribution for v. Indices past
// the trained dimension are ignored, mirroring the vectorizer's treatment of
// out-of-vocabulary terms.
func (c *SoftmaxClassifier) probabilities(v FeatureVector) []float64 {
	scores := make([]float64, numClasses)
	if c.weights == nil {
		scores[classIndex(Neutral)] = 1
		return scores
	}

	for class := 0; class < numClasses; class++ {
		score := c.weights.At(class, c.dim)
		for k, idx := range v.Indices {
			if idx < c.dim {
				score += c.weights.At(class, idx) * v.Values[k]
			}
		}
		scores[class] = score
	}

	max := floats.Max(scores)
	sum := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	floats.Scale(1/sum, scores)
	return scores
}

// ClassMetrics holds per-class evaluation results.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation holds held-out evaluation results. It is reporting output only;
// nothing in the serving path depends on it.
type Evaluation struct {
	Accuracy float64
	PerClass map[SentimentLabel]ClassMetrics
}

// Evaluate computes accuracy and per-class precision/recall/F1 over a
// held-out sample set.
func (c *SoftmaxClassifier) Evaluate(samples []FeatureVector, labels []SentimentLabel) Evaluation {
	var truePos, falsePos, falseNeg [numClasses]int
	correct := 0

	for i, sample := range samples {
		predicted := classIndex(c.Predict(sample))
		actual := classIndex(labels[i])
		if predicted == actual {
			correct++
			truePos[actual]++
		} else {
			falsePos[predicted]++
			falseNeg[actual]++
		}
	}

	eval := Evaluation{PerClass: make(map[SentimentLabel]ClassMetrics, numClasses)}
	if len(samples) > 0 {
		eval.Accuracy = float64(correct) / float64(len(samples))
	}
	for class, label := range Labels {
		m := ClassMetrics{Support: truePos[class] + falseNeg[class]}
		if truePos[class]+falsePos[class] > 0 {
			m.Precision = float64(truePos[class]) / float64(truePos[class]+falsePos[class])
		}
		if m.Support > 0 {
			m.Recall = float64(truePos[class]) / float64(m.Support)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		eval.PerClass[label] = m
	}
	return eval
}
