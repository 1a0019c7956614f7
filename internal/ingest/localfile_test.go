package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/period"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func testImporter(store Store) *Importer {
	return NewImporter(store, extract.NewScorer(2.0, 30, 800))
}

func TestImportTextFile(t *testing.T) {
	path := writeTempFile(t, "tomb.txt", interestingBody())
	store := newFakeStore()

	stored, err := testImporter(store).ImportFile(path, period.AncientEgypt, "The Lost Tomb")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if stored != 1 || len(store.units) != 1 {
		t.Fatalf("stored %d units, want 1", len(store.units))
	}

	u := store.units[0]
	if u.Title != "The Lost Tomb" {
		t.Errorf("title = %q", u.Title)
	}
	if u.Period != period.AncientEgypt {
		t.Errorf("period = %q", u.Period)
	}
	if !strings.HasPrefix(u.SourceURL, "file://") {
		t.Errorf("source url = %q, want file:// scheme", u.SourceURL)
	}
}

func TestImportDefaultsTitleToFileName(t *testing.T) {
	path := writeTempFile(t, "valley-of-kings.txt", interestingBody())
	store := newFakeStore()

	if _, err := testImporter(store).ImportFile(path, period.AncientEgypt, ""); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if got := store.units[0].Title; got != "valley-of-kings" {
		t.Errorf("title = %q, want file name without extension", got)
	}
}

func TestImportHTMLStripsMarkup(t *testing.T) {
	doc := "<html><head><style>p{color:red}</style><script>alert(1)</script></head>" +
		"<body><p>" + interestingBody() + "</p></body></html>"
	path := writeTempFile(t, "page.html", doc)
	store := newFakeStore()

	stored, err := testImporter(store).ImportFile(path, period.Medieval, "A Find")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if stored != 1 {
		t.Fatalf("stored %d passages, want 1", stored)
	}
	body := store.units[0].Body
	if strings.Contains(body, "alert(1)") || strings.Contains(body, "color:red") {
		t.Errorf("script/style content leaked into body: %q", body)
	}
	if !strings.Contains(body, "hidden tomb") {
		t.Errorf("paragraph text missing from body: %q", body)
	}
}

func TestImportRejectsUnsupportedType(t *testing.T) {
	path := writeTempFile(t, "data.csv", "a,b,c")
	if _, err := testImporter(newFakeStore()).ImportFile(path, period.Viking, ""); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestImportRejectsDuplicate(t *testing.T) {
	path := writeTempFile(t, "tomb.txt", interestingBody())
	store := newFakeStore()
	imp := testImporter(store)

	if _, err := imp.ImportFile(path, period.Viking, ""); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := imp.ImportFile(path, period.Viking, ""); err == nil {
		t.Error("expected error on second import of the same file")
	}
}

func TestImportDuplicateCaughtAtInsert(t *testing.T) {
	path := writeTempFile(t, "tomb.txt", interestingBody())
	store := newFakeStore()
	store.missSources = true
	imp := testImporter(store)

	if _, err := imp.ImportFile(path, period.Viking, ""); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if _, err := imp.ImportFile(path, period.Viking, ""); err == nil {
		t.Error("expected error when the store already holds the file's passages")
	}
	if len(store.units) != 1 {
		t.Errorf("duplicate import stored %d units, want 1", len(store.units))
	}
}

func TestImportFailsWhenNothingSurvives(t *testing.T) {
	path := writeTempFile(t, "dull.txt", "Just a few plain words here.")
	if _, err := testImporter(newFakeStore()).ImportFile(path, period.Viking, ""); err == nil {
		t.Error("expected error when no passage survives scoring")
	}
}
