package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soham247/stellar-portfolio/internal/carousel"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/static"
	"github.com/soham247/stellar-portfolio/internal/theme"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageHome     = "home.html"
	PageAbout    = "about.html"
	PageProjects = "projects.html"
	PageSkills   = "skills.html"
	PageContact  = "contact.html"
	PageNotFound = "notfound.html"
)

var pageTemplates = []string{
	PageHome,
	PageAbout,
	PageProjects,
	PageSkills,
	PageContact,
	PageNotFound,
}

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title   string
	Path    string // request path, for nav highlighting
	Styles  theme.Styles
	Site    SiteInfo
	Profile content.Profile
	Nav     []content.NavItem
	Page    *content.Page
	Content *content.Content

	ResumeURL string

	Carousel          []carousel.Item
	CarouselStep      float64
	CarouselItemWidth float64 // card width, without the gap

	Form   contact.Form
	Status *contact.Status
}

// SiteInfo is the document title and meta description.
type SiteInfo struct {
	Title       string
	Description string
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

var markdown = goldmark.New()

// renderMarkdown converts trusted content markdown to HTML.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// isActive reports whether a nav item links to the current page.
func isActive(current, target string) bool {
	if target == "/" {
		return current == "/"
	}
	return current == target || strings.HasPrefix(current, target+"/")
}

// templateFuncs returns the FuncMap available to all templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"asset":    static.AssetPath,
		"active":   isActive,
		"css":      func(s string) template.CSS { return template.CSS(s) },
		"join":     strings.Join,
		"year":     func() int { return time.Now().Year() },
	}
}

// NewTemplateEngine parses all embedded templates. Each page template is
// parsed together with the layout so that the layout wraps every page.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := templateFuncs()
	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	for _, page := range pageTemplates {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrTemplateParse, page, err)
		}
		engine.templates[page] = t
	}

	return engine, nil
}

// Render executes the named template into a buffer and writes it to w with
// the given status, so a failing template never leaves a half written page.
func (e *TemplateEngine) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.RenderTo(&buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderTo executes the named template and writes the result to an
// arbitrary io.Writer.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
