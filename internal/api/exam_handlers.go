package api

import (
	"net/http"

	"github.com/examranking/rankcalc/internal/catalog"
	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

func (s *Server) handleExams(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering exams page")

	exams, err := s.Catalog.List(r.Context())
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable) {
			log.Warn("exam catalog unavailable: %v", err)
			w.WriteHeader(http.StatusBadGateway)
			s.render(w, r, "pages/catalog_error.html", pageData{
				"retry_url": r.URL.RequestURI(),
			})
			return
		}
		handleError(w, r, err)
		return
	}

	filter := models.ExamFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}
	filtered := catalog.Filter(exams, filter)

	s.render(w, r, "pages/exams.html", pageData{
		"exams":      filtered,
		"categories": catalog.Categories(exams),
		"category":   filter.Category,
		"query":      filter.Query,
		"count":      len(filtered),
	})
}
