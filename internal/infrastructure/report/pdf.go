package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const fontFamily = "Gowun"

// PDFWriter renders the report as an A4 PDF using a registered unicode
// font (the built-in fonts cannot draw Hangul).
type PDFWriter struct {
	outputDir string
	fontPath  string
}

var _ ports.ReportWriter = (*PDFWriter)(nil)

// NewPDFWriter targets an output directory and a TTF font file.
func NewPDFWriter(outputDir, fontPath string) *PDFWriter {
	return &PDFWriter{outputDir: outputDir, fontPath: fontPath}
}

// Write renders every category's records as numbered article blocks and
// returns the output path.
func (w *PDFWriter) Write(categories []domain.Category, label string) (string, error) {
	if _, err := os.Stat(w.fontPath); err != nil {
		return "", fmt.Errorf("report font not found: %w", err)
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	title := sanitize(label)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8Font(fontFamily, "", w.fontPath)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "", 16)
		pdf.CellFormat(0, 10, sanitize("뉴스 리포트 - ")+title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.AddPage()

	idx := 1
	for _, category := range categories {
		if len(category.Records) == 0 {
			continue
		}

		pdf.SetFont(fontFamily, "", 14)
		pdf.MultiCell(0, 8, sanitize("["+category.Label+"]"), "", "L", false)
		pdf.Ln(2)

		for _, rec := range category.Records {
			w.article(pdf, idx, rec)
			idx++
		}
	}

	path := filepath.Join(w.outputDir, fmt.Sprintf("news_report_%s.pdf", safeLabel(label)))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

func (w *PDFWriter) article(pdf *fpdf.Fpdf, idx int, rec domain.Record) {
	source := rec.Source
	if source == "" {
		source = unknownSource
	}

	pdf.SetFont(fontFamily, "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf("%d. %s", idx, sanitize(rec.Title)), "", "L", false)

	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, sanitize(fmt.Sprintf("[출처] %s    [날짜] %s", source, rec.PubDate)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if strings.TrimSpace(rec.Link) != "" {
		pdf.SetTextColor(0, 0, 255)
		pdf.MultiCell(0, 6, sanitize(rec.Link), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, 6, sanitize(rec.FullText), "", "L", false)
	pdf.Ln(4)
}

// sanitize keeps ASCII, complete Hangul syllables, and newlines; anything
// else becomes a space so the registered font always has a glyph.
func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		case r >= 0xAC00 && r <= 0xD7A3:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
