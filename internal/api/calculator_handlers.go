package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examranking/rankcalc/internal/calculator"
	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

// candidateCategories are the reservation categories offered on the form.
// Distinct from an exam's subject-area category.
var candidateCategories = []string{"General", "OBC", "SC", "ST", "EWS"}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	log := logger.FromContext(r.Context()).WithField("slug", slug)
	log.Debug("rendering calculator page")

	exam := s.lookupExam(w, r, slug)
	if exam == nil {
		return
	}

	s.renderCalculator(w, r, exam)
}

func (s *Server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	log := logger.FromContext(r.Context()).WithField("slug", slug)

	exam := s.lookupExam(w, r, slug)
	if exam == nil {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		handleError(w, r, apperrors.NewBadRequestError("could not parse form"))
		return
	}

	input := calculator.Input{
		Type:     r.FormValue("inputType"),
		URL:      r.FormValue("url"),
		ExamSlug: exam.Slug,
		ExamName: exam.Name,
		Category: r.FormValue("category"),
	}
	if input.Type == calculator.InputTypeFile {
		if _, header, err := r.FormFile("file"); err == nil {
			input.FileName = header.Filename
		}
	}
	if input.Category == "" {
		input.Category = "General"
	}

	log.Info("calculator submission: input=%s, category=%s", input.Type, input.Category)

	if _, err := s.Flow.Submit(r.Context(), input); err != nil {
		if errors.Is(err, calculator.ErrSubmissionInFlight) {
			handleError(w, r, apperrors.NewBadRequestError("a calculation is already in progress"))
			return
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeValidation {
			handleError(w, r, err)
			return
		}
		// Submission failures keep any previous result visible; fall
		// through and render the page with the flow's error message.
		log.Warn("submission failed: %v", err)
	}

	s.renderCalculator(w, r, exam)
}

// lookupExam resolves the slug or writes the appropriate error response.
// A nil return means the response has already been written.
func (s *Server) lookupExam(w http.ResponseWriter, r *http.Request, slug string) *models.Exam {
	exam, err := s.Catalog.FindBySlug(r.Context(), slug)
	if err != nil {
		log := logger.FromContext(r.Context())
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			log.Warn("exam not found: %s", slug)
			w.WriteHeader(http.StatusNotFound)
			s.render(w, r, "pages/not_found.html", pageData{"slug": slug})
			return nil
		}
		if apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable) {
			log.Warn("exam catalog unavailable during lookup: %v", err)
			w.WriteHeader(http.StatusBadGateway)
			s.render(w, r, "pages/catalog_error.html", pageData{
				"retry_url": r.URL.RequestURI(),
			})
			return nil
		}
		handleError(w, r, err)
		return nil
	}
	return exam
}

func (s *Server) renderCalculator(w http.ResponseWriter, r *http.Request, exam *models.Exam) {
	snap := s.Flow.Snapshot()

	data := pageData{
		"exam":       exam,
		"categories": candidateCategories,
		"submitting": snap.State == calculator.StateSubmitting,
		"error":      "",
	}
	// Results from another exam's submission are not shown here.
	if snap.ExamSlug == exam.Slug {
		if snap.Result != nil {
			data["result"] = snap.Result
			data["leaderboard"] = snap.Leaderboard
		}
		if snap.State == calculator.StateFailed {
			data["error"] = snap.ErrMessage
		}
	}

	s.render(w, r, "pages/calculator.html", data)
}
