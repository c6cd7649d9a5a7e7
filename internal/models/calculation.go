package models

import "time"

// Calculation statuses.
const (
	CalculationCompleted = "completed"
	CalculationFailed    = "failed"
)

// Calculation is one locally recorded calculator run, shown on the
// dashboard history page.
type Calculation struct {
	ID         string    `json:"id"`
	ExamSlug   string    `json:"exam_slug"`
	ExamName   string    `json:"exam_name"`
	Category   string    `json:"category"`
	Rank       int       `json:"rank"`
	Score      int       `json:"score"`
	Percentage float64   `json:"percentage"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// CalculationFilter narrows a history listing.
type CalculationFilter struct {
	ExamSlug string
	Status   string
	Since    time.Time
	Limit    int
	Offset   int
	OrderDir string
}
