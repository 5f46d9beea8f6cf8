package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"go.uber.org/zap"
)

const converterBinary = "wkhtmltopdf"

// MissingDependencyError reports that the HTML to PDF converter is not installed
type MissingDependencyError struct {
	Binary string
	Err    error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s is missing, install it with:\n"+
		"  $ sudo apt-get install %s      (Debian/Ubuntu)\n"+
		"  $ brew install --cask %s       (macOS)\n"+
		"or set pdf.binary in the config file", e.Binary, converterBinary, converterBinary)
}

func (e *MissingDependencyError) Unwrap() error { return e.Err }

// ConversionFailureError reports that the converter ran but did not produce a document
type ConversionFailureError struct {
	Output string // converter stderr
	Err    error
}

func (e *ConversionFailureError) Error() string {
	msg := fmt.Sprintf("some error occurred during report generation: %v", e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ConversionFailureError) Unwrap() error { return e.Err }

// Converter turns an HTML document into a file at outPath
type Converter interface {
	Convert(html []byte, outPath string) error
}

// PDFConverter converts HTML to A4 portrait PDF with wkhtmltopdf
type PDFConverter struct {
	logger *zap.Logger
}

// NewPDFConverter checks that wkhtmltopdf can be found. binPath overrides
// the PATH lookup when set.
func NewPDFConverter(binPath string, logger *zap.Logger) (*PDFConverter, error) {
	if binPath != "" {
		if _, err := os.Stat(binPath); err != nil {
			return nil, &MissingDependencyError{Binary: binPath, Err: err}
		}
		wkhtmltopdf.SetPath(binPath)
	}

	// The generator is discarded; creating it performs the binary lookup
	if _, err := wkhtmltopdf.NewPDFGenerator(); err != nil {
		return nil, &MissingDependencyError{Binary: converterBinary, Err: err}
	}

	return &PDFConverter{logger: logger}, nil
}

// Convert renders html into a PDF at outPath. Nothing is written when the
// conversion fails.
func (c *PDFConverter) Convert(html []byte, outPath string) error {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return &MissingDependencyError{Binary: converterBinary, Err: err}
	}

	var stderr bytes.Buffer
	pdfg.SetStderr(&stderr)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Quiet.Set(true)

	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(html)))

	c.logger.Debug("Converting report to PDF",
		zap.String("output", outPath),
		zap.Int("html_bytes", len(html)))

	if err := pdfg.Create(); err != nil {
		return &ConversionFailureError{Output: stderr.String(), Err: err}
	}

	if err := pdfg.WriteFile(outPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return nil
}

// HTMLWriter stores the HTML document as is
type HTMLWriter struct{}

// Convert writes html to outPath
func (HTMLWriter) Convert(html []byte, outPath string) error {
	if err := os.WriteFile(outPath, html, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
