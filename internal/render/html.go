package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/username/workhour-report/internal/report"
	"github.com/username/workhour-report/pkg/dateutil"
	"go.uber.org/zap"
)

const documentTitle = "Erfassung der geleisteten Arbeitszeiten"

//go:embed templates/report.html.tmpl
var templateFS embed.FS

//go:embed assets/logo.svg
var defaultLogo []byte

// HTMLRenderer turns a report into the printable HTML form
type HTMLRenderer struct {
	tmpl   *template.Template
	logo   template.URL
	logger *zap.Logger
}

type htmlView struct {
	Title         string
	Logo          template.URL
	Name          string
	Institution   string
	Period        string
	ContractHours string
	Rows          []report.Row
	Total         string
	Date          string
	Signature     template.URL
}

// NewHTMLRenderer parses the embedded template. logoPath replaces the
// built-in logo when set.
func NewHTMLRenderer(logoPath string, logger *zap.Logger) (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	logo := dataURI("image/svg+xml", defaultLogo)
	if logoPath != "" {
		data, err := os.ReadFile(logoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read logo: %w", err)
		}
		logo = dataURI(mimetype.Detect(data).String(), data)
		logger.Debug("Using custom logo", zap.String("path", logoPath))
	}

	return &HTMLRenderer{
		tmpl:   tmpl,
		logo:   logo,
		logger: logger,
	}, nil
}

// Render writes the HTML document for rep to w
func (r *HTMLRenderer) Render(w io.Writer, rep *report.Report) error {
	view := htmlView{
		Title:         documentTitle,
		Logo:          r.logo,
		Name:          rep.Employee.DisplayName(),
		Institution:   rep.Institution,
		Period:        rep.Period(),
		ContractHours: strconv.Itoa(rep.TotalHours),
		Rows:          rep.Rows,
		Total:         rep.TotalText(),
		Date:          dateutil.FormatGerman(rep.GeneratedOn),
	}

	if rep.SignaturePath != "" {
		sig, err := SignatureDataURI(rep.SignaturePath)
		if err != nil {
			return err
		}
		view.Signature = sig
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// RenderBytes renders rep into memory
func (r *HTMLRenderer) RenderBytes(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, rep); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dataURI(mime string, data []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
