// Package resolver maps matched slide records to their rendered artifacts.
package resolver

import (
	"path/filepath"
	"strings"

	"slidesearch/internal/domain"
)

var _ domain.Resolver = (*PDFDir)(nil)

// PDFDir resolves records against a directory of per-deck PDFs, one page per
// slide. A deck named "report.pptx" resolves to "<dir>/report.pdf"; pages
// are 1-based.
type PDFDir struct {
	dir string
}

// NewPDFDir creates a resolver over the given PDF output directory.
func NewPDFDir(dir string) *PDFDir { return &PDFDir{dir: dir} }

// Resolve returns the PDF page locator for the record.
func (r *PDFDir) Resolve(record domain.SlideRecord) (domain.ArtifactHandle, error) {
	stem := strings.TrimSuffix(record.Deck, filepath.Ext(record.Deck))
	return domain.ArtifactHandle{
		Path: filepath.Join(r.dir, stem+".pdf"),
		Page: record.Slide + 1,
	}, nil
}
