// Package extract turns raw article text into candidate passages and scores
// them for narrative interest.
package extract

import (
	"regexp"
	"strings"
)

const (
	// minParagraphChars drops fragments too short to stand alone.
	minParagraphChars = 30
	// coalesceTargetChars is how large a unit grows while absorbing short
	// adjacent paragraphs.
	coalesceTargetChars = 400
	// maxFullTextChars is the cutoff below which an article body is kept
	// whole instead of being split into sections.
	maxFullTextChars = 3000
	// maxJoinedParagraphs caps coalescing so a split candidate stays a
	// one-or-two paragraph passage.
	maxJoinedParagraphs = 2
)

var citationRe = regexp.MustCompile(`\[\d+\]`)

// Candidate is a passage cut from one article, not yet scored or filtered.
type Candidate struct {
	Title string
	Body  string
}

// Extract splits an article body into candidate passages. Short articles are
// kept whole; long ones are split on paragraph boundaries, with short
// adjacent paragraphs coalesced so no candidate is a lone fragment.
// Candidate bodies keep their citation markers; cleanup happens when a
// candidate survives scoring, so citation density still counts against it.
func Extract(title, text string) []Candidate {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if len(text) > 100 && len(text) < maxFullTextChars {
		return []Candidate{{Title: title, Body: text}}
	}

	var sections []string
	for _, s := range strings.Split(text, "\n\n") {
		s = strings.TrimSpace(s)
		if len(s) > minParagraphChars {
			sections = append(sections, s)
		}
	}

	var candidates []Candidate
	i := 0
	for i < len(sections) {
		body := sections[i]
		j := i + 1
		for j < len(sections) && len(body) < coalesceTargetChars && j-i < maxJoinedParagraphs {
			body += "\n\n" + sections[j]
			j++
		}
		candidates = append(candidates, Candidate{Title: title, Body: body})
		if j > i+1 {
			i = j
		} else {
			i++
		}
	}
	return candidates
}

// Clean strips bracketed citation markers and normalizes whitespace: lines
// are trimmed, empty lines dropped, and paragraphs rejoined with blank lines.
func Clean(text string) string {
	text = citationRe.ReplaceAllString(text, "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n\n")
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
