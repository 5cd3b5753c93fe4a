package urbaneats

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// TrainingConfig controls one model generation.
type TrainingConfig struct {
	MaxFeatures  int     // vocabulary cap for the vectorizer
	Iterations   int     // optimizer iteration budget
	LearningRate float64 // gradient step size
	L2           float64 // regularization strength
	Tolerance    float64 // convergence threshold on weight deltas
	TestFraction float64 // share of the corpus held out for evaluation
	SampleSize   int     // subsample the corpus to this many reviews; 0 keeps all
	Seed         int64   // shuffle/sample seed, for reproducible runs
}

// DefaultTrainingConfig returns the standard configuration.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		MaxFeatures:  MaxVocabulary,
		Iterations:   200,
		LearningRate: 0.5,
		L2:           1e-4,
		Tolerance:    1e-4,
		TestFraction: 0.2,
		Seed:         time.Now().UnixNano(),
	}
}

// TrainingMetrics reports what one training run produced.
type TrainingMetrics struct {
	TrainSize      int
	TestSize       int
	VocabularySize int
	Converged      bool
	Evaluation     Evaluation
	TrainingTime   time.Duration
}

// TrainModel runs the full training pipeline: validate and shuffle the
// corpus, optionally subsample it, hold out a test split, normalize, fit the
// vectorizer, train the classifier, and evaluate on the held-out split. The
// returned model binds the fitted vectorizer and classifier as one unit.
//
// Non-convergence within the iteration budget is logged as a warning and
// reported in the metrics; the model is still returned. Invalid star ratings
// anywhere in the corpus fail the whole run.
func TrainModel(reviews []Review, normalizer *Normalizer, cfg TrainingConfig) (*TrainedModel, TrainingMetrics, error) {
	start := time.Now()
	var metrics TrainingMetrics

	if len(reviews) == 0 {
		return nil, metrics, fmt.Errorf("training: empty corpus")
	}

	labels := make([]SentimentLabel, len(reviews))
	for i, review := range reviews {
		label, err := LabelFromStars(review.Stars)
		if err != nil {
			return nil, metrics, fmt.Errorf("training: review %d: %w", i, err)
		}
		labels[i] = label
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := rng.Perm(len(reviews))
	if cfg.SampleSize > 0 && cfg.SampleSize < len(order) {
		order = order[:cfg.SampleSize]
	}

	testN := int(float64(len(order)) * cfg.TestFraction)
	if testN < 0 {
		testN = 0
	}
	if testN >= len(order) {
		testN = len(order) - 1
	}
	trainIdx, testIdx := order[testN:], order[:testN]

	trainDocs := make([]string, len(trainIdx))
	trainLabels := make([]SentimentLabel, len(trainIdx))
	for i, idx := range trainIdx {
		trainDocs[i] = normalizer.Normalize(reviews[idx].Text)
		trainLabels[i] = labels[idx]
	}

	vectorizer := NewTFIDFVectorizer(cfg.MaxFeatures)
	trainVecs, err := vectorizer.FitTransform(trainDocs)
	if err != nil {
		return nil, metrics, fmt.Errorf("training: %w", err)
	}

	classifier := NewSoftmaxClassifier()
	if cfg.Iterations > 0 {
		classifier.Iterations = cfg.Iterations
	}
	if cfg.LearningRate > 0 {
		classifier.LearningRate = cfg.LearningRate
	}
	if cfg.L2 > 0 {
		classifier.L2 = cfg.L2
	}
	if cfg.Tolerance > 0 {
		classifier.Tolerance = cfg.Tolerance
	}

	converged, err := classifier.Fit(trainVecs, trainLabels)
	if err != nil {
		return nil, metrics, fmt.Errorf("training: %w", err)
	}
	if !converged {
		slog.Warn("optimizer did not converge within iteration budget; keeping best-effort weights",
			slog.Int("iterations", classifier.Iterations))
	}

	model, err := NewTrainedModel(vectorizer, classifier)
	if err != nil {
		return nil, metrics, fmt.Errorf("training: %w", err)
	}

	metrics.TrainSize = len(trainIdx)
	metrics.TestSize = len(testIdx)
	metrics.VocabularySize = vectorizer.VocabularySize()
	metrics.Converged = converged

	if len(testIdx) > 0 {
		testVecs := make([]FeatureVector, len(testIdx))
		testLabels := make([]SentimentLabel, len(testIdx))
		for i, idx := range testIdx {
			testVecs[i] = vectorizer.Transform(normalizer.Normalize(reviews[idx].Text))
			testLabels[i] = labels[idx]
		}
		metrics.Evaluation = classifier.Evaluate(testVecs, testLabels)
	}

	metrics.TrainingTime = time.Since(start)
	return model, metrics, nil
}
