package render

import (
	"fmt"
	"strings"
)

// Output formats
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// OutputFilename returns "<lastname>-<yyyy>-<mm>.<ext>" with the last name
// lowercased
func OutputFilename(lastname string, year, month int, ext string) string {
	return fmt.Sprintf("%s-%04d-%02d.%s", strings.ToLower(lastname), year, month, ext)
}

// ParseFormat validates an output format name
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case FormatPDF, FormatHTML, FormatXLSX:
		return f, nil
	case "":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown format %q (want pdf, html or xlsx)", s)
	}
}
