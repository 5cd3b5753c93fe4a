package urbaneats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A SubjectivityScorer estimates how opinion-laden (versus factual) a piece
// of text is, on a [0,1] scale. The serving pipeline treats it as a black
// box; this package does not maintain its own lexicon.
type SubjectivityScorer interface {
	Subjectivity(text string) float64
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// stripLinks drops URLs before lexicon scoring, keeping the anchor text of
// markdown-style links.
func stripLinks(text string) string {
	text = markdownLinkPattern.ReplaceAllString(text, "$1")
	return bareURLPattern.ReplaceAllString(text, "")
}

// VaderScorer scores subjectivity with the VADER lexicon: each sentence's
// subjectivity is the share of its sentiment mass that is not neutral, and
// the text's score is the average over sentences.
type VaderScorer struct {
	analyzer  *govader.SentimentIntensityAnalyzer
	segmenter *sentences.DefaultSentenceTokenizer
}

// NewVaderScorer builds a scorer with the English sentence tokenizer.
func NewVaderScorer() (*VaderScorer, error) {
	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading sentence tokenizer: %w", err)
	}
	return &VaderScorer{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		segmenter: segmenter,
	}, nil
}

// Subjectivity returns the opinion-ladenness of text in [0,1]. Empty text
// scores 0: there is nothing opinionated in nothing.
func (s *VaderScorer) Subjectivity(text string) float64 {
	plain := strings.TrimSpace(stripLinks(text))
	if plain == "" {
		return 0
	}

	total := 0.0
	count := 0
	for _, sentence := range s.segmenter.Tokenize(plain) {
		segment := strings.TrimSpace(sentence.Text)
		if segment == "" {
			continue
		}
		polarity := s.analyzer.PolarityScores(segment)
		total += clamp01(polarity.Positive + polarity.Negative)
		count++
	}
	if count == 0 {
		polarity := s.analyzer.PolarityScores(plain)
		return clamp01(polarity.Positive + polarity.Negative)
	}
	return clamp01(total / float64(count))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
