// Package catalog resolves exam descriptors from either the bundled data
// file or the remote exam service.
package catalog

import (
	"context"
	"strings"

	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/models"
)

// Catalog is a read-only lookup over the exam listing.
type Catalog interface {
	// List returns the full ordered set of exams.
	List(ctx context.Context) ([]models.Exam, error)
	// FindBySlug returns the exam with the given slug, or a NOT_FOUND
	// error. If the data source contains duplicate slugs the first match
	// wins.
	FindBySlug(ctx context.Context, slug string) (*models.Exam, error)
}

func findBySlug(exams []models.Exam, slug string) (*models.Exam, error) {
	for i := range exams {
		if exams[i].Slug == slug {
			return &exams[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("exam", slug)
}

// Filter applies an ExamFilter to a listing. It is pure: the input slice is
// never modified. Matching is case-insensitive substring containment over
// name, description and subjects.
func Filter(exams []models.Exam, filter models.ExamFilter) []models.Exam {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var out []models.Exam
	for _, exam := range exams {
		if filter.Category != "" && filter.Category != "All" && exam.Category != filter.Category {
			continue
		}
		if query != "" && !matchesQuery(exam, query) {
			continue
		}
		out = append(out, exam)
	}
	return out
}

func matchesQuery(exam models.Exam, query string) bool {
	if strings.Contains(strings.ToLower(exam.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(exam.Description), query) {
		return true
	}
	for _, subject := range exam.Subjects {
		if strings.Contains(strings.ToLower(subject), query) {
			return true
		}
	}
	return false
}

// Categories returns the distinct exam categories in first-seen order.
func Categories(exams []models.Exam) []string {
	seen := make(map[string]bool, len(exams))
	var out []string
	for _, exam := range exams {
		if exam.Category == "" || seen[exam.Category] {
			continue
		}
		seen[exam.Category] = true
		out = append(out, exam.Category)
	}
	return out
}
