package extractor

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// AdvancedLayer extracts text through the MuPDF renderer. It handles custom
// font encodings and layout quirks that defeat the embedded-text layer, at
// the cost of linking a cgo dependency.
type AdvancedLayer struct{}

func NewAdvancedLayer() *AdvancedLayer { return &AdvancedLayer{} }

func (l *AdvancedLayer) Name() string { return "advanced" }

// Available always reports true: MuPDF is compiled into the binary.
func (l *AdvancedLayer) Available() bool { return true }

func (l *AdvancedLayer) ExtractPages(ctx context.Context, path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("renderer crashed: %v", r)
		}
	}()

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}

	if !IsReadableText(pages) {
		return nil, fmt.Errorf("renderer produced no readable text")
	}
	return pages, nil
}

// PageCount returns the number of pages without extracting text.
func PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.NumPage(), nil
}
