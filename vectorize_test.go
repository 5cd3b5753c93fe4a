package urbaneats

import (
	"errors"
	"testing"
)

func TestTFIDFFitTransform(t *testing.T) {
	docs := []string{
		"great burger great fries",
		"cold burger",
		"great service",
	}

	v := NewTFIDFVectorizer(0)
	vectors, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if len(vectors) != len(docs) {
		t.Fatalf("got %d vectors for %d docs", len(vectors), len(docs))
	}

	// Vocabulary: burger, cold, fries, great, service.
	if got := v.VocabularySize(); got != 5 {
		t.Fatalf("VocabularySize = %d, want 5", got)
	}
	for i, vec := range vectors {
		if vec.Dim != 5 {
			t.Errorf("doc %d: Dim = %d, want 5", i, vec.Dim)
		}
		if len(vec.Indices) != len(vec.Values) {
			t.Errorf("doc %d: %d indices but %d values", i, len(vec.Indices), len(vec.Values))
		}
		for _, val := range vec.Values {
			if val <= 0 {
				t.Errorf("doc %d: non-positive weight %f", i, val)
			}
		}
	}
}

func TestTFIDFTransformUnseenTerms(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	if err := v.Fit([]string{"great burger", "cold fries"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Entirely out-of-vocabulary text yields the zero vector, never an error.
	vec := v.Transform("sushi ramen tempura")
	if len(vec.Indices) != 0 {
		t.Errorf("out-of-vocabulary text produced %d nonzero entries", len(vec.Indices))
	}
	if vec.Dim != 4 {
		t.Errorf("Dim = %d, want 4", vec.Dim)
	}

	// Mixed text only weighs the in-vocabulary part, and the vocabulary
	// stays frozen.
	before := v.VocabularySize()
	vec = v.Transform("great sushi")
	if len(vec.Indices) != 1 {
		t.Errorf("mixed text produced %d nonzero entries, want 1", len(vec.Indices))
	}
	if v.VocabularySize() != before {
		t.Errorf("Transform grew the vocabulary from %d to %d", before, v.VocabularySize())
	}
}

func TestTFIDFTransformEmptyText(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	if err := v.Fit([]string{"great burger"}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	vec := v.Transform("")
	if len(vec.Indices) != 0 || len(vec.Values) != 0 {
		t.Errorf("empty text produced nonzero vector: %+v", vec)
	}
}

func TestTFIDFRefitRejected(t *testing.T) {
	v := NewTFIDFVectorizer(0)
	if err := v.Fit([]string{"great burger"}); err != nil {
		t.Fatalf("first Fit: %v", err)
	}
	if err := v.Fit([]string{"cold fries"}); !errors.Is(err, ErrAlreadyFit) {
		t.Errorf("second Fit: want ErrAlreadyFit, got %v", err)
	}
}

func TestTFIDFVocabularyCap(t *testing.T) {
	docs := []string{
		"burger fries shake",
		"burger fries",
		"burger sushi",
	}

	v := NewTFIDFVectorizer(2)
	if err := v.Fit(docs); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got := v.VocabularySize(); got != 2 {
		t.Fatalf("VocabularySize = %d, want 2", got)
	}

	// The two most document-frequent terms survive the cap.
	for _, term := range []string{"burger", "fries"} {
		if _, ok := v.vocabulary[term]; !ok {
			t.Errorf("high-frequency term %q missing from capped vocabulary", term)
		}
	}
	if _, ok := v.vocabulary["shake"]; ok {
		t.Error("low-frequency term survived the cap")
	}
}
