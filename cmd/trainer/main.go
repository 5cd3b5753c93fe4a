package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
	"github.com/subosito/gotenv"

	urbaneats "github.com/morotioye/urban-eats"
)

func main() {
	initLogger()
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	corpusPath := flag.String("corpus", envOr("CORPUS_PATH", "data/reviews.csv"), "path to the text,stars review CSV")
	modelDir := flag.String("model", envOr("MODEL_DIR", "models/sentiment"), "directory to write the trained model into")
	sampleSize := flag.Int("sample", envIntOr("SAMPLE_SIZE", 0), "subsample the corpus to this many reviews (0 keeps all)")
	iterations := flag.Int("iterations", envIntOr("TRAIN_ITERATIONS", 200), "optimizer iteration budget")
	testFraction := flag.Float64("test-fraction", 0.2, "share of the corpus held out for evaluation")
	seed := flag.Int64("seed", time.Now().UnixNano(), "shuffle seed for reproducible runs")
	flag.Parse()

	reviews, err := urbaneats.LoadReviews(*corpusPath)
	if err != nil {
		slog.Error("failed to load corpus", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("corpus loaded",
		slog.String("path", *corpusPath),
		slog.Int("reviews", len(reviews)))

	normalizer, err := urbaneats.NewNormalizer()
	if err != nil {
		slog.Error("failed to build normalizer", slog.Any("error", err))
		os.Exit(1)
	}

	cfg := urbaneats.DefaultTrainingConfig()
	cfg.SampleSize = *sampleSize
	cfg.Iterations = *iterations
	cfg.TestFraction = *testFraction
	cfg.Seed = *seed

	model, metrics, err := urbaneats.TrainModel(reviews, normalizer, cfg)
	if err != nil {
		slog.Error("training failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("training finished",
		slog.Int("train_size", metrics.TrainSize),
		slog.Int("test_size", metrics.TestSize),
		slog.Int("vocabulary", metrics.VocabularySize),
		slog.Bool("converged", metrics.Converged),
		slog.Duration("elapsed", metrics.TrainingTime))

	if metrics.TestSize > 0 {
		slog.Info("held-out accuracy", slog.Float64("accuracy", metrics.Evaluation.Accuracy))
		for _, label := range urbaneats.Labels {
			m := metrics.Evaluation.PerClass[label]
			slog.Info("per-class metrics",
				slog.String("label", string(label)),
				slog.Float64("precision", m.Precision),
				slog.Float64("recall", m.Recall),
				slog.Float64("f1", m.F1),
				slog.Int("support", m.Support))
		}
	}

	if err := model.Save(*modelDir); err != nil {
		slog.Error("failed to save model", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("model saved", slog.String("dir", *modelDir))
}

func initLogger() {
	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
