package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"rentai/models"
	"rentai/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// shared templates parsed into every page set
var partials = []string{"templates/layout.html", "templates/cards.html"}

var iconGlyphs = map[models.Icon]string{
	models.IconBuilding2: "🏢",
	models.IconHome:      "🏠",
	models.IconCastle:    "🏰",
	models.IconHotel:     "🏨",
	models.IconBuilding:  "🏬",
	models.IconWarehouse: "🏭",
}

// IconGlyph resolves an icon identifier to the glyph drawn on the card.
func IconGlyph(i models.Icon) string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return "▢"
}

var funcs = template.FuncMap{
	"naira":    services.FormatNaira,
	"millions": services.FormatMillions,
	"baths":    services.FormatBaths,
	"glyph":    IconGlyph,
	"cover": func(l models.Listing) string {
		return l.CoverImage()
	},
}

// Renderer implements echo.Renderer over the embedded page templates. Each
// page is its own template set so that every page can define "content".
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template together with the shared partials.
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, f := range files {
		if isPartial(f) {
			continue
		}
		name := path.Base(f)
		name = name[:len(name)-len(path.Ext(name))]

		patterns := append(append([]string(nil), partials...), f)
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, patterns...)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func isPartial(f string) bool {
	for _, p := range partials {
		if p == f {
			return true
		}
	}
	return false
}

// Render executes the layout of the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
