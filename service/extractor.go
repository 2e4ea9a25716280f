package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns uploaded bytes into plain text for analysis.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, content []byte) (string, error)
}

type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(_ context.Context, filename string, content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", ErrUnsupportedFileType, filename)
	}
	return strings.TrimSpace(string(content)), nil
}

// PDFExtractor reads the text layer of a PDF. Scanned PDFs without a text
// layer come back empty.
type PDFExtractor struct {
	// MaxPages limits how many pages are read; zero reads all of them.
	MaxPages int
}

func (e PDFExtractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filename, err)
	}

	if e.MaxPages <= 0 {
		plain, err := reader.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("read pdf text %s: %w", filename, err)
		}
		text, err := io.ReadAll(plain)
		if err != nil {
			return "", fmt.Errorf("read pdf text %s: %w", filename, err)
		}
		return strings.TrimSpace(string(text)), nil
	}

	pages := min(reader.NumPage(), e.MaxPages)
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d of %s: %w", i, filename, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
