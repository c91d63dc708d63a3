// Package views renders the HTML screens.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/bar-comandas/web/internal/backend"
	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/session"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every screen is rendered with.
type Page struct {
	Title   string
	User    *session.Session
	Flashes []session.Flash
	// RefreshSeconds, when positive, makes the browser reload the page periodically.
	RefreshSeconds int
	Data           any
}

// Renderer holds one parsed template set per screen.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": Money,
	"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"zero":  func() decimal.Decimal { return decimal.Zero },
	"inc":   func(i int) int { return i + 1 },
	// the proxied image path is the same on this server as on the API
	"qrcode": backend.QRCodePath,
	"paymentMethods": func() []models.PaymentMethod {
		return models.PaymentMethods
	},
}

// Money formats an amount the way every screen displays it.
func Money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	pageFiles, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range pageFiles {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the named screen and writes it with status. The page is
// buffered first so a template failure leaves w untouched.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
