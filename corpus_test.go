package urbaneats

import (
	"errors"
	"strings"
	"testing"
)

func TestReadReviews(t *testing.T) {
	input := `text,stars
"Terrible food, cold and late",1
Great burgers,5
"Average, nothing special",3
`
	reviews, err := ReadReviews(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("got %d reviews, want 3", len(reviews))
	}
	if reviews[0].Stars != 1 || reviews[1].Stars != 5 || reviews[2].Stars != 3 {
		t.Errorf("stars parsed wrong: %+v", reviews)
	}
	if reviews[0].Text != "Terrible food, cold and late" {
		t.Errorf("text parsed wrong: %q", reviews[0].Text)
	}
}

func TestReadReviewsNoHeader(t *testing.T) {
	reviews, err := ReadReviews(strings.NewReader("Great burgers,5\n"))
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1", len(reviews))
	}
}

func TestReadReviewsRejectsBadStars(t *testing.T) {
	tests := []struct {
		input string
		desc  string
	}{
		{"text,stars\nGreat burgers,7\n", "out-of-range stars"},
		{"text,stars\nGreat burgers,0\n", "zero stars"},
		{"Great burgers,5\nCold fries,soggy\n", "non-integer stars mid-file"},
		{"Cold fries,soggy\n", "non-integer stars on a headerless first row"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := ReadReviews(strings.NewReader(tt.input)); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestReadReviewsOutOfRangeIsInvalidStars(t *testing.T) {
	_, err := ReadReviews(strings.NewReader("text,stars\nGreat burgers,9\n"))
	if !errors.Is(err, ErrInvalidStars) {
		t.Errorf("want ErrInvalidStars, got %v", err)
	}
}

func TestLoadReviewsMissingFile(t *testing.T) {
	if _, err := LoadReviews("testdata/does-not-exist.csv"); err == nil {
		t.Error("want error for missing file, got nil")
	}
}
