package extractor

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// OCRLayer rasterizes pages through MuPDF and runs Tesseract on each image.
// This is the last resort for scanned statements that have no text layer.
type OCRLayer struct {
	language string
	dpi      int
}

func NewOCRLayer(language string, dpi int) *OCRLayer {
	if language == "" {
		language = "por"
	}
	if dpi <= 0 {
		// 300 DPI gives Tesseract enough resolution for statement fonts
		dpi = 300
	}
	return &OCRLayer{language: language, dpi: dpi}
}

func (l *OCRLayer) Name() string { return "ocr" }

// Available reports whether the tesseract binary is on PATH.
func (l *OCRLayer) Available() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

func (l *OCRLayer) ExtractPages(ctx context.Context, path string) ([]string, error) {
	if !l.Available() {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr with the %s language pack)", l.language)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, float64(l.dpi))
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d: %w", i+1, err)
		}

		imgFile := filepath.Join(tmpDir, fmt.Sprintf("page-%03d.png", i+1))
		f, err := os.Create(imgFile)
		if err != nil {
			return nil, fmt.Errorf("create page image: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("encode page image: %w", err)
		}
		f.Close()

		text, err := l.recognize(ctx, imgFile)
		if err != nil {
			// Some pages may still OCR fine; keep going.
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("ocr produced no text from %d pages", doc.NumPage())
	}
	return pages, nil
}

// recognize runs tesseract on one page image. PSM 4 assumes a single column
// of text of variable sizes, which fits statement layouts.
func (l *OCRLayer) recognize(ctx context.Context, imgFile string) (string, error) {
	outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
	cmd := exec.CommandContext(ctx, "tesseract", imgFile, outBase, "-l", l.language, "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract: %v (output: %s)", err, string(out))
	}

	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
