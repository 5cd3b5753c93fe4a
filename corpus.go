package urbaneats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadReviews reads a review corpus from a two-column text,stars CSV file.
// An optional header row is skipped; any other row with a malformed or
// out-of-range star rating fails the load.
func LoadReviews(path string) ([]Review, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer file.Close()

	reviews, err := ReadReviews(file)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	return reviews, nil
}

// ReadReviews parses text,stars CSV records from r.
func ReadReviews(r io.Reader) ([]Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var reviews []Review
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}

		if row == 0 && strings.EqualFold(strings.TrimSpace(record[1]), "stars") {
			// Header row.
			continue
		}
		stars, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("row %d: stars %q is not an integer", row+1, record[1])
		}
		if _, err := LabelFromStars(stars); err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		reviews = append(reviews, Review{Text: record[0], Stars: stars})
	}
	return reviews, nil
}
