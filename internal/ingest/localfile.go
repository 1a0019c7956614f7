package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"github.com/nvoss/eras/internal/extract"
	"github.com/nvoss/eras/internal/period"
	"github.com/nvoss/eras/internal/storage"
)

// Importer loads local documents into the catalog through the same
// extraction and scoring path as fetched articles. Supported formats are
// plain text, HTML, and PDF.
type Importer struct {
	store  Store
	scorer *extract.Scorer
}

func NewImporter(store Store, scorer *extract.Scorer) *Importer {
	return &Importer{store: store, scorer: scorer}
}

// ImportFile reads one document, splits and scores it, and stores the
// surviving passages under the given period. title defaults to the file
// name. Returns the number of passages stored; a document where nothing
// survives scoring is an error so the caller knows the import was a no-op.
func (i *Importer) ImportFile(path string, p period.Period, title string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving path: %w", err)
	}
	sourceURL := "file://" + abs

	seen, err := i.store.HasSource(sourceURL)
	if err != nil {
		return 0, fmt.Errorf("checking for previous import: %w", err)
	}
	if seen {
		return 0, fmt.Errorf("%s was already imported", path)
	}

	text, err := readDocument(abs)
	if err != nil {
		return 0, err
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}

	survivors := i.scorer.Filter(extract.Extract(title, text))
	if len(survivors) == 0 {
		return 0, fmt.Errorf("no passages in %s survived scoring", path)
	}

	now := time.Now().UTC()
	stored := 0
	for n, sc := range survivors {
		unit := storage.ContentUnit{
			ID:        uuid.New().String(),
			Period:    p,
			Title:     sc.Title,
			Body:      sc.Body,
			WordCount: extract.WordCount(sc.Body),
			Score:     sc.Score,
			SourceURL: sourceURL,
			Seq:       n,
			CreatedAt: now,
		}
		if err := i.store.InsertUnit(unit); err != nil {
			if errors.Is(err, storage.ErrDuplicateSource) {
				return stored, fmt.Errorf("%s was already imported", path)
			}
			return stored, fmt.Errorf("storing passage: %w", err)
		}
		stored++
	}
	return stored, nil
}

// readDocument extracts plain text from a supported file type.
func readDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), nil
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return htmlText(data)
	case ".pdf":
		return pdfText(path)
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// htmlText collects the text content of an HTML document, skipping script
// and style elements. Block boundaries become paragraph breaks so the
// splitter sees the same shape as an article extract.
func htmlText(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "p", "div", "h1", "h2", "h3", "h4", "li", "br":
				b.WriteString("\n\n")
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String(), nil
}

func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}
