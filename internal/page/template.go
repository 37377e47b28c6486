package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/Eursukkul/menulink/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Variant names one of the public page layouts.
type Variant string

const (
	VariantTraditional Variant = "traditional"
	VariantMinimalist  Variant = "minimalist"
	VariantVisual      Variant = "visual"
)

// SelectTemplate maps the stored theme type to a layout. Anything other than
// minimalist or visual renders as traditional.
func SelectTemplate(theme models.ThemeType) Variant {
	switch theme {
	case models.ThemeMinimalist:
		return VariantMinimalist
	case models.ThemeVisual:
		return VariantVisual
	default:
		return VariantTraditional
	}
}

// Data is what a template receives: the cached view model plus request
// scoped values.
type Data struct {
	*ViewModel
	CSRFField    template.HTML
	FormAction   string
	Flash        string
	FlashIsError bool

	// Booking form state for the selected date. Times holds the only start
	// times the form offers; with Available false the form shows a notice
	// and cannot be submitted.
	PageAction string
	Date       string
	Times      []string
	Available  bool
	PartySizes []int
}

// Template renders a restaurant page. All variants consume the same Data.
type Template interface {
	Variant() Variant
	Render(w io.Writer, data Data) error
}

// htmlTemplate is one layout file over the shared layout and partials.
type htmlTemplate struct {
	variant Variant
	t       *template.Template
}

func (h htmlTemplate) Variant() Variant { return h.variant }

func (h htmlTemplate) Render(w io.Writer, data Data) error {
	return h.t.ExecuteTemplate(w, "layout", data)
}

// Renderer holds the parsed layouts.
type Renderer struct {
	templates map[Variant]Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Variant]Template, 3)}
	for _, v := range []Variant{VariantTraditional, VariantMinimalist, VariantVisual} {
		t, err := template.New(string(v)).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+string(v)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", v, err)
		}
		r.templates[v] = htmlTemplate{variant: v, t: t}
	}
	return r, nil
}

// For returns the layout for a theme type.
func (r *Renderer) For(theme models.ThemeType) Template {
	return r.templates[SelectTemplate(theme)]
}

// ForVariant returns the layout a view model was built for. Unknown variants
// fall back to traditional.
func (r *Renderer) ForVariant(v Variant) Template {
	if t, ok := r.templates[v]; ok {
		return t
	}
	return r.templates[VariantTraditional]
}

var funcs = template.FuncMap{
	"price": func(p float64) string { return fmt.Sprintf("%.2f", p) },
	"join":  strings.Join,
	"safeCSS": func(s string) template.CSS {
		// Only plain color and font tokens reach the stylesheet.
		if strings.ContainsAny(s, ";{}<>\"'\\") {
			return ""
		}
		return template.CSS(s)
	},
}
