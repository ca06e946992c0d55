// Package extract turns files of many formats into plain text.
//
// Extraction is best effort: a file that cannot be read produces no text and
// a log entry, never an error for the caller.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"ragbot/internal/logging"
)

// ErrUnsupported is reported for file extensions without a reader.
var ErrUnsupported = errors.New("unsupported format")

// ReadFunc extracts raw text from the file at path.
type ReadFunc func(ctx context.Context, path string) (string, error)

// OCRConfig points at the external OCR program used for images.
type OCRConfig struct {
	Command  string
	Language string
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithOCR sets the OCR program used for image files.
func WithOCR(cfg OCRConfig) Option {
	return func(e *Extractor) { e.ocr = cfg }
}

// WithReader registers or replaces the reader for an extension such as ".txt".
func WithReader(ext string, fn ReadFunc) Option {
	return func(e *Extractor) { e.readers[strings.ToLower(ext)] = fn }
}

// Extractor dispatches on file extension to a format-specific reader.
type Extractor struct {
	readers map[string]ReadFunc
	ocr     OCRConfig
	log     *zap.Logger
}

// New creates an extractor with readers for every supported format.
func New(log *zap.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		readers: make(map[string]ReadFunc),
		ocr:     OCRConfig{Command: "tesseract", Language: "eng"},
		log:     logging.OrNop(log),
	}
	for _, ext := range []string{".txt", ".md", ".rtf"} {
		e.readers[ext] = readPlain
	}
	e.readers[".json"] = readJSON
	e.readers[".csv"] = readCSV
	e.readers[".xlsx"] = readXLSX
	e.readers[".pdf"] = readPDF
	e.readers[".docx"] = readDOCX
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		e.readers[ext] = e.readImage
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supported lists the recognised extensions in sorted order.
func (e *Extractor) Supported() []string {
	out := make([]string, 0, len(e.readers))
	for ext := range e.readers {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extract returns the trimmed text of the file at path. Unsupported formats and
// failures yield an empty string.
func (e *Extractor) Extract(ctx context.Context, path string) string {
	text, err := e.extract(ctx, path)
	switch {
	case errors.Is(err, ErrUnsupported):
		e.log.Warn("unsupported format", zap.String("file", path), zap.String("ext", filepath.Ext(path)))
		return ""
	case err != nil:
		e.log.Error("extraction failed", zap.String("file", path), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) extract(ctx context.Context, path string) (text string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	read, ok := e.readers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	// Parsers for binary formats may panic on malformed input.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reader panic: %v", r)
		}
	}()
	return read(ctx, path)
}
