package api

import (
	"net/http"

	"github.com/examranking/rankcalc/internal/logger"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	exams, err := s.Catalog.List(r.Context())
	if err != nil {
		// The home page degrades to its marketing copy when the catalog
		// is unreachable; the exams page owns the retry affordance.
		log.Warn("failed to list exams for home page: %v", err)
		exams = nil
	}

	s.render(w, r, "pages/home.html", pageData{
		"exams": exams,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, r, "pages/not_found.html", pageData{})
}

// staticPage renders a fixed informational page.
func (s *Server) staticPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, name, pageData{"title": title})
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["user"]; !ok {
		data["user"] = s.Session.Current()
	}
	data["authenticated"] = s.Session.IsAuthenticated()

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
