package catalog

import (
	"context"
	"embed"
	"encoding/json"

	"github.com/examranking/rankcalc/internal/models"
)

//go:embed data/exams.json
var examsFS embed.FS

// Static serves the exam catalog from the data file bundled into the
// binary. The listing is parsed once at construction and never changes.
type Static struct {
	exams []models.Exam
}

// NewStatic parses the bundled exam data.
func NewStatic() (*Static, error) {
	raw, err := examsFS.ReadFile("data/exams.json")
	if err != nil {
		return nil, err
	}
	var exams []models.Exam
	if err := json.Unmarshal(raw, &exams); err != nil {
		return nil, err
	}
	return &Static{exams: exams}, nil
}

func (s *Static) List(ctx context.Context) ([]models.Exam, error) {
	out := make([]models.Exam, len(s.exams))
	copy(out, s.exams)
	return out, nil
}

func (s *Static) FindBySlug(ctx context.Context, slug string) (*models.Exam, error) {
	return findBySlug(s.exams, slug)
}

var _ Catalog = (*Static)(nil)
