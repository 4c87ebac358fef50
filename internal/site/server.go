// Package site serves the portfolio web pages, the theme toggle and the
// contact form API.
package site

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/soham247/stellar-portfolio/internal/carousel"
	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/static"
	"github.com/soham247/stellar-portfolio/internal/theme"
)

// carouselGap is the CSS gap between carousel cards, in pixels.
const carouselGap = 16.0

// maxFormBytes bounds contact form bodies.
const maxFormBytes = 64 << 10

// Server is the portfolio web server.
type Server struct {
	cfg       *Config
	content   *content.Content
	strip     *carousel.Strip
	templates *TemplateEngine
	submitter *contact.Submitter
	router    *chi.Mux
}

// NewServer creates a new server for c. Contact form submissions go through
// submitter.
func NewServer(cfg *Config, c *content.Content, submitter *contact.Submitter) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no content", ErrInvalidConfig)
	}
	if submitter == nil {
		return nil, fmt.Errorf("%w: no contact submitter", ErrInvalidConfig)
	}

	templates, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		content:   c,
		strip:     carousel.NewStrip(c.Carousel, cfg.Carousel.ItemWidth),
		templates: templates,
		submitter: submitter,
		router:    chi.NewRouter(),
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(theme.Middleware)

	s.router.Get("/healthz", s.healthHandler)
	s.router.Handle(static.Prefix+"*", http.StripPrefix(static.Prefix, static.Handler()))
	if s.cfg.AssetsDir != "" {
		if _, err := os.Stat(s.cfg.AssetsDir); err == nil {
			s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.cfg.AssetsDir))))
		}
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Post("/contact", s.apiContactHandler)
	})

	s.router.Post("/theme", s.themeHandler)
	s.router.Get("/resume", s.resumeHandler)

	s.router.Group(func(r chi.Router) {
		r.Use(theme.RequireResolved)
		r.Get("/", s.pageHandler(PageHome, "home"))
		r.Get("/aboutme", s.pageHandler(PageAbout, "about"))
		r.Get("/projects", s.pageHandler(PageProjects, "projects"))
		r.Get("/skills", s.pageHandler(PageSkills, "skills"))
		r.Get("/contact", s.pageHandler(PageContact, "contact"))
		r.Post("/contact", s.contactFormHandler)
	})

	s.router.NotFound(s.notFoundHandler)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
