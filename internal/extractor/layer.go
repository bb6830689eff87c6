package extractor

import "context"

// Layer extracts per-page text from a PDF file on disk. Layers are tried in
// order and a layer that yields no transactions is followed by the next one.
type Layer interface {
	// Name identifies the layer in reports and logs.
	Name() string
	// Available reports whether the layer's backing tool can run on this
	// host. Unavailable layers are skipped, not treated as errors.
	Available() bool
	// ExtractPages returns the text of each page in document order.
	ExtractPages(ctx context.Context, path string) ([]string, error)
}

// DefaultLayers returns the standard extraction ladder: embedded-text
// extraction first, then layout-aware rendering, then OCR as the last
// resort for scanned documents.
func DefaultLayers(ocrLanguage string, ocrDPI int) []Layer {
	return []Layer{
		NewTextLayer(),
		NewAdvancedLayer(),
		NewOCRLayer(ocrLanguage, ocrDPI),
	}
}
