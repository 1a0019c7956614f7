package extract

import (
	"regexp"
)

// Scoring policy "keyword-v1": each engagement category contributes one
// point per keyword match, capped per category so a single repeated keyword
// cannot dominate. Reference-only markers subtract. The function is pure:
// identical title+body always produces the identical score, which is what
// makes re-ingestion reproducible.

const categoryCap = 3.0

const (
	disambiguationPenalty = 5.0
	listPenalty           = 3.0
	citationPenalty       = 0.5
	// freeCitations is how many bracketed references a passage may carry
	// before citation density starts counting against it.
	freeCitations = 2
)

var categories = []*regexp.Regexp{
	// discovery / mystery
	regexp.MustCompile(`(?i)\b(?:discover\w*|myster\w*|unearthed|uncovered|revealed|hidden|secret\w*|unknown|lost|tomb\w*|excavat\w*|artifact\w*)\b`),
	// drama / conflict
	regexp.MustCompile(`(?i)\b(?:battle\w*|siege\w*|assassin\w*|murder\w*|killed|destroy\w*|conquer\w*|betray\w*|rebellion\w*|execut\w*|shocking|disaster\w*|plague\w*|scandal\w*|invasion\w*)\b`),
	// superlative
	regexp.MustCompile(`(?i)\b(?:first|largest|greatest|oldest|biggest|legendary|remarkable|extraordinary|unprecedented|astonishing|famous\w*)\b`),
	// human interest
	regexp.MustCompile(`(?i)\b(?:king\w*|queen\w*|emperor\w*|empress\w*|pharaoh\w*|soldier\w*|slave\w*|child\w*|escap\w*|surviv\w*|fortune\w*|tragic|tragedy|love\w*)\b`),
}

var (
	disambiguationRe = regexp.MustCompile(`(?i)may refer to|\(disambiguation\)`)
	listLineRe       = regexp.MustCompile(`(?m)^\s*(?:[*\-•]|\d+[.)]|\(\d+\))\s`)
	inlineListRe     = regexp.MustCompile(`\(\d+\)`)
)

// Scorer decides which candidates survive ingestion. The zero value is not
// usable; construct with NewScorer.
type Scorer struct {
	threshold float64
	minWords  int
	maxWords  int
}

func NewScorer(threshold float64, minWords, maxWords int) *Scorer {
	return &Scorer{threshold: threshold, minWords: minWords, maxWords: maxWords}
}

// Score computes the interestingness of a candidate from its title and body.
func (s *Scorer) Score(title, body string) float64 {
	text := title + "\n" + body

	var score float64
	for _, re := range categories {
		matched := float64(len(re.FindAllString(text, -1)))
		score += min(matched, categoryCap)
	}

	if disambiguationRe.MatchString(text) {
		score -= disambiguationPenalty
	}

	listLines := len(listLineRe.FindAllString(body, -1)) + len(inlineListRe.FindAllString(body, -1))
	if listLines >= 3 {
		score -= listPenalty
	}

	if n := len(citationRe.FindAllString(body, -1)); n > freeCitations {
		score -= citationPenalty * float64(n-freeCitations)
	}

	return score
}

// Survives reports whether a candidate passes both the score threshold
// (inclusive) and the word-count window. The returned score is computed on
// the body before citation cleanup so citation density still counts.
func (s *Scorer) Survives(c Candidate) (float64, bool) {
	score := s.Score(c.Title, c.Body)
	if score < s.threshold {
		return score, false
	}
	words := WordCount(Clean(c.Body))
	if words < s.minWords || words > s.maxWords {
		return score, false
	}
	return score, true
}

// Filter returns the candidates that survive scoring, preserving order, with
// each survivor's body cleaned and its score attached.
func (s *Scorer) Filter(candidates []Candidate) []ScoredCandidate {
	var out []ScoredCandidate
	for _, c := range candidates {
		score, ok := s.Survives(c)
		if !ok {
			continue
		}
		out = append(out, ScoredCandidate{
			Title: c.Title,
			Body:  Clean(c.Body),
			Score: score,
		})
	}
	return out
}

// ScoredCandidate is a surviving passage ready for storage.
type ScoredCandidate struct {
	Title string
	Body  string
	Score float64
}
