package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	data, err := s.Backend.Dashboard(r.Context(), s.Session.Token())
	if err != nil {
		// The remote dashboard service is optional; fall back to the
		// locally recorded calculation history.
		log.Warn("dashboard service unavailable, using local history: %v", err)
		data = s.localDashboard(r)
	}

	s.render(w, r, "pages/dashboard.html", pageData{
		"stats":        data.Stats,
		"activity":     data.RecentActivity,
		"achievements": data.Achievements,
	})
}

// localDashboard builds dashboard data from the calculations table when the
// dashboard service cannot be reached.
func (s *Server) localDashboard(r *http.Request) *models.DashboardData {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	data := &models.DashboardData{}

	total, err := s.DB.CountCalculations(ctx, models.CalculationFilter{})
	if err != nil {
		log.Error("failed to count calculations: %v", err)
		return data
	}
	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	thisMonth, err := s.DB.CountCalculations(ctx, models.CalculationFilter{Since: monthStart})
	if err != nil {
		log.Error("failed to count this month's calculations: %v", err)
		return data
	}
	data.Stats = models.DashboardStats{
		TotalCalculations:     total,
		ThisMonthCalculations: thisMonth,
	}

	recent, err := s.DB.ListCalculations(ctx, models.CalculationFilter{Limit: 5})
	if err != nil {
		log.Error("failed to list recent calculations: %v", err)
		return data
	}
	for _, c := range recent {
		rank := "—"
		if c.Status == models.CalculationCompleted {
			rank = "#" + strconv.Itoa(c.Rank)
		}
		data.RecentActivity = append(data.RecentActivity, models.DashboardActivity{
			Exam:   c.ExamName,
			Date:   c.CreatedAt.Format("2 Jan 2006"),
			Rank:   rank,
			Score:  c.Score,
			Status: c.Status,
		})
	}
	return data
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.CalculationFilter{
		ExamSlug: strings.TrimSpace(q.Get("exam")),
		Status:   strings.TrimSpace(q.Get("status")),
		Limit:    20,
	}
	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handleError(w, r, apperrors.NewValidationError("page", "must be a positive integer"))
			return
		}
		page = n
	}
	filter.Offset = (page - 1) * filter.Limit

	calcs, err := s.DB.ListCalculations(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	total, err := s.DB.CountCalculations(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	hasNext := filter.Offset+len(calcs) < total
	s.render(w, r, "pages/history.html", pageData{
		"calculations": calcs,
		"total":        total,
		"page":         page,
		"has_next":     hasNext,
		"exam":         filter.ExamSlug,
		"status":       filter.Status,
	})
}
