package site

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/theme"
)

type jsonResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (s *Server) sendJSONResponse(w http.ResponseWriter, resp jsonResponse, httpCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// pageData fills in everything the layout needs for the named page.
func (s *Server) pageData(r *http.Request, page string) PageData {
	c := s.content
	p := c.Page(page)
	return PageData{
		Title:  p.Title,
		Path:   r.URL.Path,
		Styles: theme.StylesFromContext(r.Context()),
		Site: SiteInfo{
			Title:       c.Site.Title,
			Description: c.Site.Description,
		},
		Profile:           c.Profile,
		Nav:               c.Nav,
		Page:              p,
		Content:           c,
		ResumeURL:         s.cfg.ResumeURL,
		Carousel:          s.strip.Items(),
		CarouselStep:      s.cfg.Carousel.Step,
		CarouselItemWidth: s.cfg.Carousel.ItemWidth - carouselGap,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data PageData) {
	if err := s.templates.Render(w, status, name, data); err != nil {
		log.Printf("failed to render %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (s *Server) pageHandler(name, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, http.StatusOK, name, s.pageData(r, page))
	}
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, "notfound")
	s.render(w, http.StatusNotFound, PageNotFound, data)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n") //nolint:errcheck
}

func (s *Server) resumeHandler(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ResumeURL == "" {
		s.notFoundHandler(w, r)
		return
	}
	http.Redirect(w, r, s.cfg.ResumeURL, http.StatusFound)
}

// themeHandler flips the visitor's theme and sends them back to the page
// they came from.
func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	current, _ := theme.FromContext(r.Context())
	theme.SetCookie(w, current.Toggle())

	back := r.PostFormValue("return")
	if back == "" {
		if ref, err := url.Parse(r.Referer()); err == nil && (ref.Host == "" || ref.Host == r.Host) {
			back = ref.RequestURI()
		}
	}
	http.Redirect(w, r, localPath(back), http.StatusSeeOther)
}

// localPath returns p if it is a path on this site, and "/" otherwise.
func localPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return u.RequestURI()
}

// contactFormHandler handles the contact form when JavaScript is off. The
// page is rendered again with the outcome; the fields are kept unless the
// message went out.
func (s *Server) contactFormHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Printf("contact: failed to parse form: %v", err)
	}

	form := contact.Form{
		Name:    r.PostFormValue(contact.FieldName),
		Email:   r.PostFormValue(contact.FieldEmail),
		Subject: r.PostFormValue(contact.FieldSubject),
		Message: r.PostFormValue(contact.FieldMessage),
	}

	status := s.submitter.Submit(r.Context(), contact.ClientIP(r), form)

	data := s.pageData(r, "contact")
	data.Status = &status
	if !status.Clear() {
		data.Form = form
	}

	code := http.StatusOK
	if status.Outcome == contact.OutcomeThrottled {
		code = http.StatusTooManyRequests
	}
	s.render(w, code, PageContact, data)
}

// apiContactHandler is the JSON endpoint used by contact.js.
func (s *Server) apiContactHandler(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		s.sendJSONResponse(w, jsonResponse{Message: "Content-Type must be application/json"}, http.StatusUnsupportedMediaType)
		return
	}

	var form contact.Form
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err := dec.Decode(&form); err != nil {
		msg := "Invalid JSON format"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "Message is too large"
		}
		s.sendJSONResponse(w, jsonResponse{Message: msg}, http.StatusBadRequest)
		return
	}

	status := s.submitter.Submit(r.Context(), contact.ClientIP(r), form)
	resp := jsonResponse{
		Success: status.Success(),
		Message: status.Message,
		Field:   status.Field,
	}

	var code int
	switch status.Outcome {
	case contact.OutcomeSent, contact.OutcomeRejected:
		code = http.StatusOK
	case contact.OutcomeInvalid:
		code = http.StatusBadRequest
	case contact.OutcomeThrottled:
		code = http.StatusTooManyRequests
	default:
		code = http.StatusBadGateway
	}
	s.sendJSONResponse(w, resp, code)
}
