package extract

import (
	"strings"
	"testing"
)

func TestExtractKeepsShortArticleWhole(t *testing.T) {
	text := strings.Repeat("The excavation revealed a great deal about daily life in the city. ", 10)
	candidates := Extract("Pompeii", text)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Title != "Pompeii" {
		t.Errorf("title = %q, want Pompeii", candidates[0].Title)
	}
}

func TestExtractSplitsLongArticle(t *testing.T) {
	paragraph := strings.Repeat("Each section describes a different phase of the long siege. ", 12)
	text := strings.Join([]string{paragraph, paragraph, paragraph, paragraph, paragraph, paragraph}, "\n\n")
	if len(text) < maxFullTextChars {
		t.Fatalf("test input too short to trigger splitting: %d chars", len(text))
	}

	candidates := Extract("Siege", text)
	if len(candidates) < 2 {
		t.Fatalf("expected multiple candidates from a long article, got %d", len(candidates))
	}
}

func TestExtractCoalescesShortParagraphs(t *testing.T) {
	short := "A short line about the siege that is just over the minimum."
	long := strings.Repeat("padding sentence here to push total over the split threshold. ", 60)
	text := short + "\n\n" + short + "\n\n" + long

	candidates := Extract("Siege", text)
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	// The two short paragraphs must not each become their own fragment.
	first := candidates[0].Body
	if !strings.Contains(first, short+"\n\n"+short) {
		t.Errorf("short paragraphs were not coalesced:\n%s", first)
	}
}

func TestExtractCapsCandidateAtTwoParagraphs(t *testing.T) {
	// Many short paragraphs, long enough overall to force the split path.
	para := strings.Repeat("A brief note on the campaign season. ", 3)
	paras := make([]string, 40)
	for i := range paras {
		paras[i] = para
	}
	text := strings.Join(paras, "\n\n")
	if len(text) < maxFullTextChars {
		t.Fatalf("test input too short to trigger splitting: %d chars", len(text))
	}

	for _, c := range Extract("Campaign", text) {
		if n := strings.Count(c.Body, "\n\n") + 1; n > maxJoinedParagraphs {
			t.Fatalf("candidate joined %d paragraphs:\n%s", n, c.Body)
		}
	}
}

func TestExtractDropsEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\n"} {
		if got := Extract("t", text); got != nil {
			t.Errorf("Extract(%q) = %v, want nil", text, got)
		}
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := strings.Repeat("The hidden tomb was discovered in 1923 by a team of archaeologists. ", 8)
	a := Extract("Tomb", text)
	b := Extract("Tomb", text)
	if len(a) != len(b) {
		t.Fatalf("candidate counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("candidate %d differs between runs", i)
		}
	}
}

func TestCleanStripsCitations(t *testing.T) {
	in := "The city fell in 1453.[1][23] Its walls had stood for a thousand years.[4]"
	got := Clean(in)
	if strings.Contains(got, "[") {
		t.Errorf("citations not stripped: %q", got)
	}
	if !strings.Contains(got, "The city fell in 1453.") {
		t.Errorf("text mangled: %q", got)
	}
}

func TestCleanNormalizesWhitespace(t *testing.T) {
	in := "  first line  \n\n\n   second line\n"
	want := "first line\n\nsecond line"
	if got := Clean(in); got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour"); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount(empty) = %d, want 0", got)
	}
}
