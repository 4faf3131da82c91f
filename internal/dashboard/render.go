package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/yosssi/gohtml"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template function helpers.
var templateFuncs = template.FuncMap{
	"num": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}

// Renderer handles HTML template rendering.
type Renderer struct {
	pageTmpl  *template.Template
	errorTmpl *template.Template
	pretty    bool
}

// NewRenderer creates a new template renderer. With pretty set, pages are
// re-indented before they are written.
func NewRenderer(pretty bool) (*Renderer, error) {
	pageTmpl, err := template.New("index.html").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	errorTmpl, err := template.New("error.html").
		ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error template: %w", err)
	}

	return &Renderer{
		pageTmpl:  pageTmpl,
		errorTmpl: errorTmpl,
		pretty:    pretty,
	}, nil
}

// PageData contains all data for rendering the dashboard page.
type PageData struct {
	Layout      Layout
	RecordCount int
	ImageFormat string
}

// ErrorData contains data for rendering error pages.
type ErrorData struct {
	Code    int
	Title   string
	Message string
}

// RenderPage renders the dashboard page.
func (r *Renderer) RenderPage(w io.Writer, data *PageData) error {
	return r.execute(w, r.pageTmpl, data)
}

// RenderError renders an error page.
func (r *Renderer) RenderError(w io.Writer, data *ErrorData) error {
	return r.execute(w, r.errorTmpl, data)
}

func (r *Renderer) execute(w io.Writer, tmpl *template.Template, data any) error {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute %s template: %w", tmpl.Name(), err)
	}

	out := buf.Bytes()
	if r.pretty {
		out = gohtml.FormatBytes(out)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write %s: %w", tmpl.Name(), err)
	}

	return nil
}
