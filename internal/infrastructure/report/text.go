// Package report renders the final categorized record list as a plain-text
// or PDF document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const unknownSource = "알수없음"

// Text builds the plain-text report body: a [category] header followed by
// one "(source) title" + link pair per record. Empty categories are
// skipped.
func Text(categories []domain.Category) string {
	var b strings.Builder
	for _, category := range categories {
		if len(category.Records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "[%s]\n", category.Label)
		for _, rec := range category.Records {
			source := rec.Source
			if source == "" {
				source = unknownSource
			}
			fmt.Fprintf(&b, "(%s) %s\n%s\n", source, rec.Title, rec.Link)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TextWriter writes the plain-text report to the output directory.
type TextWriter struct {
	outputDir string
}

var _ ports.ReportWriter = (*TextWriter)(nil)

// NewTextWriter targets the given output directory.
func NewTextWriter(outputDir string) *TextWriter {
	return &TextWriter{outputDir: outputDir}
}

// Write renders the report and returns the output path.
func (w *TextWriter) Write(categories []domain.Category, label string) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.outputDir, fmt.Sprintf("news_report_%s.txt", safeLabel(label)))
	if err := os.WriteFile(path, []byte(Text(categories)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// safeLabel keeps only letters and digits so the label is filename-safe.
func safeLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}
