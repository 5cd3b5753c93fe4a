package urbaneats

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// modelFormatVersion is bumped whenever the persisted artifact layout
// changes. Loading an artifact with a different version fails with
// ErrModelFormat.
const modelFormatVersion = 1

const (
	vectorizerFile = "vectorizer.gob"
	classifierFile = "classifier.gob"
)

// A TrainedModel binds a fitted vectorizer and the classifier trained
// against its vocabulary into one immutable unit. The binding is the whole
// point: the two are persisted and loaded only together, so a classifier can
// never be paired with a vocabulary it was not trained on. A loaded model is
// read-only and safe to share across concurrent inference calls.
type TrainedModel struct {
	vectorizer *TFIDFVectorizer
	classifier *SoftmaxClassifier
}

// NewTrainedModel binds a fitted vectorizer and a classifier trained against
// its vocabulary. Unfitted components are refused with ErrNotFit, and a
// dimension mismatch between the two with ErrModelFormat, so a mismatched
// pair cannot be assembled through the public API.
func NewTrainedModel(vectorizer *TFIDFVectorizer, classifier *SoftmaxClassifier) (*TrainedModel, error) {
	if !vectorizer.fitted || !classifier.fitted {
		return nil, ErrNotFit
	}
	if classifier.dim != len(vectorizer.vocabulary) {
		return nil, fmt.Errorf("%w: classifier dimension %d does not match vocabulary size %d",
			ErrModelFormat, classifier.dim, len(vectorizer.vocabulary))
	}
	return &TrainedModel{vectorizer: vectorizer, classifier: classifier}, nil
}

// Predict vectorizes an already-normalized text and returns the predicted
// sentiment label.
func (m *TrainedModel) Predict(normalized string) SentimentLabel {
	return m.classifier.Predict(m.vectorizer.Transform(normalized))
}

// VocabularySize reports the size of the bound vocabulary.
func (m *TrainedModel) VocabularySize() int {
	return m.vectorizer.VocabularySize()
}

type vectorizerArtifact struct {
	FormatVersion int
	MaxFeatures   int
	Vocabulary    map[string]int
	IDF           []float64
}

type classifierArtifact struct {
	FormatVersion int
	Classes       []SentimentLabel
	Dim           int
	Weights       []float64 // row-major, numClasses x (Dim+1)
}

// Save writes the model as two gob artifacts, vectorizer.gob and
// classifier.gob, inside dir (created if absent).
func (m *TrainedModel) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	va := vectorizerArtifact{
		FormatVersion: modelFormatVersion,
		MaxFeatures:   m.vectorizer.MaxFeatures,
		Vocabulary:    m.vectorizer.vocabulary,
		IDF:           m.vectorizer.idf,
	}
	if err := writeArtifact(filepath.Join(dir, vectorizerFile), va); err != nil {
		return err
	}

	ca := classifierArtifact{
		FormatVersion: modelFormatVersion,
		Classes:       Labels[:],
		Dim:           m.classifier.dim,
		Weights:       append([]float64(nil), m.classifier.weights.RawMatrix().Data...),
	}
	return writeArtifact(filepath.Join(dir, classifierFile), ca)
}

// LoadModel reads a model saved by Save. It fails, rather than substituting
// defaults, when either artifact is missing, does not decode, carries a
// different format version, or is inconsistent with its sibling.
func LoadModel(dir string) (*TrainedModel, error) {
	var va vectorizerArtifact
	if err := readArtifact(filepath.Join(dir, vectorizerFile), &va); err != nil {
		return nil, err
	}
	if va.FormatVersion != modelFormatVersion {
		return nil, fmt.Errorf("%w: vectorizer version %d, want %d", ErrModelFormat, va.FormatVersion, modelFormatVersion)
	}
	if len(va.IDF) != len(va.Vocabulary) {
		return nil, fmt.Errorf("%w: %d IDF weights for %d vocabulary terms", ErrModelFormat, len(va.IDF), len(va.Vocabulary))
	}

	var ca classifierArtifact
	if err := readArtifact(filepath.Join(dir, classifierFile), &ca); err != nil {
		return nil, err
	}
	if ca.FormatVersion != modelFormatVersion {
		return nil, fmt.Errorf("%w: classifier version %d, want %d", ErrModelFormat, ca.FormatVersion, modelFormatVersion)
	}
	if len(ca.Classes) != numClasses {
		return nil, fmt.Errorf("%w: classifier has %d classes, want %d", ErrModelFormat, len(ca.Classes), numClasses)
	}
	for i, class := range ca.Classes {
		if class != Labels[i] {
			return nil, fmt.Errorf("%w: classifier class %d is %q, want %q", ErrModelFormat, i, class, Labels[i])
		}
	}
	if ca.Dim != len(va.Vocabulary) {
		return nil, fmt.Errorf("%w: classifier dimension %d does not match vocabulary size %d", ErrModelFormat, ca.Dim, len(va.Vocabulary))
	}
	if len(ca.Weights) != numClasses*(ca.Dim+1) {
		return nil, fmt.Errorf("%w: classifier has %d weights, want %d", ErrModelFormat, len(ca.Weights), numClasses*(ca.Dim+1))
	}

	vectorizer := &TFIDFVectorizer{
		MaxFeatures: va.MaxFeatures,
		vocabulary:  va.Vocabulary,
		idf:         va.IDF,
		fitted:      true,
	}
	classifier := NewSoftmaxClassifier()
	classifier.dim = ca.Dim
	classifier.weights = mat.NewDense(numClasses, ca.Dim+1, ca.Weights)
	classifier.fitted = true

	return &TrainedModel{vectorizer: vectorizer, classifier: classifier}, nil
}

func writeArtifact(path string, payload any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := gob.NewEncoder(file).Encode(payload); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}

func readArtifact(path string, payload any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(payload); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
