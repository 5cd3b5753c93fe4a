package urbaneats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestModelRoundTrip(t *testing.T) {
	n := newTestNormalizer(t)
	model := newTestModel(t, n)

	dir := filepath.Join(t.TempDir(), "sentiment")
	if err := model.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if loaded.VocabularySize() != model.VocabularySize() {
		t.Fatalf("vocabulary size changed across round-trip: %d vs %d",
			model.VocabularySize(), loaded.VocabularySize())
	}

	// The loaded model must predict identically on a fixed batch, including
	// degenerate and out-of-vocabulary inputs.
	batch := []string{
		n.Normalize("Terrible food, cold and late!"),
		n.Normalize("Amazing fantastic perfect dinner"),
		n.Normalize("Good tasty noodles but bland crust"),
		n.Normalize("xylophone quasar zeppelin"),
		"",
	}
	for _, text := range batch {
		want := model.Predict(text)
		if got := loaded.Predict(text); got != want {
			t.Errorf("Predict(%q) changed across round-trip: %q vs %q", text, want, got)
		}
	}
}

func TestNewTrainedModelRejectsUnfit(t *testing.T) {
	if _, err := NewTrainedModel(NewTFIDFVectorizer(0), NewSoftmaxClassifier()); !errors.Is(err, ErrNotFit) {
		t.Errorf("want ErrNotFit for unfitted components, got %v", err)
	}
}

func TestNewTrainedModelRejectsMismatch(t *testing.T) {
	vectorizer := NewTFIDFVectorizer(0)
	if err := vectorizer.Fit([]string{"great burger", "cold fries"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// A classifier trained against a different vocabulary's dimension must
	// not bind to this vectorizer.
	classifier := NewSoftmaxClassifier()
	samples, labels := separableSamples()
	if _, err := classifier.Fit(samples, labels); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if _, err := NewTrainedModel(vectorizer, classifier); !errors.Is(err, ErrModelFormat) {
		t.Errorf("want ErrModelFormat for dimension mismatch, got %v", err)
	}
}

func TestLoadModelMissing(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "no-such-model")); err == nil {
		t.Error("LoadModel on missing directory: want error, got nil")
	}
}

func TestLoadModelPartial(t *testing.T) {
	n := newTestNormalizer(t)
	model := newTestModel(t, n)

	dir := filepath.Join(t.TempDir(), "sentiment")
	if err := model.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, classifierFile)); err != nil {
		t.Fatalf("removing classifier artifact: %v", err)
	}

	// One artifact alone must never load as a model.
	if _, err := LoadModel(dir); err == nil {
		t.Error("LoadModel with missing classifier artifact: want error, got nil")
	}
}

func TestLoadModelCorrupt(t *testing.T) {
	n := newTestNormalizer(t)
	model := newTestModel(t, n)

	dir := filepath.Join(t.TempDir(), "sentiment")
	if err := model.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, classifierFile), []byte("not a gob stream"), 0o644); err != nil {
		t.Fatalf("corrupting artifact: %v", err)
	}

	if _, err := LoadModel(dir); err == nil {
		t.Error("LoadModel with corrupt artifact: want error, got nil")
	}
}

func TestLoadModelVersionMismatch(t *testing.T) {
	n := newTestNormalizer(t)
	model := newTestModel(t, n)

	dir := filepath.Join(t.TempDir(), "sentiment")
	if err := model.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stale := vectorizerArtifact{
		FormatVersion: modelFormatVersion + 1,
		Vocabulary:    map[string]int{"burger": 0},
		IDF:           []float64{1},
	}
	if err := writeArtifact(filepath.Join(dir, vectorizerFile), stale); err != nil {
		t.Fatalf("writing stale artifact: %v", err)
	}

	if _, err := LoadModel(dir); !errors.Is(err, ErrModelFormat) {
		t.Errorf("LoadModel with version mismatch: want ErrModelFormat, got %v", err)
	}
}

func TestLoadModelClassOrderMismatch(t *testing.T) {
	n := newTestNormalizer(t)
	model := newTestModel(t, n)

	dir := filepath.Join(t.TempDir(), "sentiment")
	if err := model.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Right class count, wrong class order: must not load.
	dim := model.VocabularySize()
	reversed := make([]SentimentLabel, numClasses)
	for i, label := range Labels {
		reversed[numClasses-1-i] = label
	}
	stale := classifierArtifact{
		FormatVersion: modelFormatVersion,
		Classes:       reversed,
		Dim:           dim,
		Weights:       make([]float64, numClasses*(dim+1)),
	}
	if err := writeArtifact(filepath.Join(dir, classifierFile), stale); err != nil {
		t.Fatalf("writing stale artifact: %v", err)
	}

	if _, err := LoadModel(dir); !errors.Is(err, ErrModelFormat) {
		t.Errorf("LoadModel with reordered classes: want ErrModelFormat, got %v", err)
	}
}
