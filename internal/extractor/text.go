package extractor

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLayer extracts the embedded text of a PDF using the structured library.
// It tries multiple extraction methods to handle different PDF encodings and
// never returns garbage: unreadable output is reported as an error so the
// next layer can take over.
type TextLayer struct{}

func NewTextLayer() *TextLayer { return &TextLayer{} }

func (l *TextLayer) Name() string { return "text" }

// Available always reports true: the layer has no external dependencies.
func (l *TextLayer) Available() bool { return true }

// pageMethods are the per-page extraction approaches, in order of layout
// fidelity: row grouping, coordinate reconstruction, then the font-mapped
// plain text path. Each handles encodings the previous one cannot.
var pageMethods = []func(pdf.Page) (string, bool){
	pageRows,
	pageColumns,
	pagePlainText,
}

func (l *TextLayer) ExtractPages(ctx context.Context, path string) (pages []string, err error) {
	// The library panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("open pdf: %w", openErr)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	for _, method := range pageMethods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = collectPages(r, numPages, method)
		if IsReadableText(pages) {
			return pages, nil
		}
	}

	// Whole-document extraction takes a different path through the library
	// and occasionally succeeds where the per-page methods do not.
	if text := documentPlainText(r); IsReadableText([]string{text}) {
		return []string{text}, nil
	}

	return nil, fmt.Errorf("no readable text in embedded layer; document may be image-based or use custom font encodings")
}

// collectPages runs one extraction method across the document, dropping
// pages the method cannot decode.
func collectPages(r *pdf.Reader, numPages int, extract func(pdf.Page) (string, bool)) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, ok := extract(page)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}
	return pages
}

// pageRows joins the library's own row detection, which preserves layout
// best on well-structured PDFs.
func pageRows(page pdf.Page) (string, bool) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", false
	}

	var lines []string
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}

// pageColumns rebuilds rows from raw text objects: pieces sharing a Y
// coordinate form a row, ordered by X, with wide X gaps rendered as column
// separators. Needed when the PDF emits text out of reading order.
func pageColumns(page pdf.Page) (string, bool) {
	content := page.Content()
	if len(content.Text) == 0 {
		return "", false
	}

	rows := make(map[int][]pdf.Text)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], t)
	}

	// PDF Y grows bottom-to-top, so rows sort descending.
	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var lines []string
	for _, y := range ys {
		items := rows[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].X < items[b].X
		})

		var row strings.Builder
		var prevX float64
		for j, item := range items {
			if j > 0 && item.X-prevX > 15 {
				row.WriteString("  ")
			}
			row.WriteString(item.S)
			prevX = item.X
		}
		if line := strings.TrimSpace(row.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}

// pagePlainText decodes through the page's font map, which resolves some
// custom encodings the positional methods garble.
func pagePlainText(page pdf.Page) (string, bool) {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(text), true
}

func documentPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
