// Package result produces placeholder score breakdowns and leaderboards.
// The numbers are random: they exist to drive the display layer end to end
// until a real scoring service is wired in, and carry no correctness
// guarantee beyond their internal arithmetic.
package result

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/examranking/rankcalc/internal/models"
)

// Fixed parameters of the mock paper.
const (
	TotalMarks    = 300
	QuestionCount = 150

	maxRank         = 10000
	maxCategoryRank = 2000
	minScore        = 50
	minAttempted    = 60
	correctRatio    = 0.7
	normalizeFactor = 0.85

	leaderboardSize = 10
)

// Generator draws mock results from an injectable random source.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator with a time-seeded source.
func New() *Generator {
	return NewWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithSource creates a Generator over the given source. Tests pass a
// fixed seed.
func NewWithSource(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate produces a random ExamResult for the given exam and candidate
// category. Attempted is drawn from [60,150) against a 150-question paper,
// so unattempted can never go negative.
func (g *Generator) Generate(examSlug, category string) models.ExamResult {
	score := g.rng.Intn(TotalMarks-minScore) + minScore
	attempted := g.rng.Intn(QuestionCount-minAttempted) + minAttempted
	correct := int(float64(attempted) * correctRatio)

	r := models.ExamResult{
		Rank:            g.rng.Intn(maxRank) + 1,
		Score:           score,
		TotalMarks:      TotalMarks,
		Percentage:      float64(score) / float64(TotalMarks) * 100,
		CategoryRank:    g.rng.Intn(maxCategoryRank) + 1,
		NormalizedMarks: float64(score) * normalizeFactor,
		Attempted:       attempted,
		Unattempted:     QuestionCount - attempted,
		Correct:         correct,
		Incorrect:       attempted - correct,
		Category:        category,
	}
	_ = examSlug // the mock draws the same distribution for every exam
	return r
}

// Leaderboard produces exactly ten entries with ranks 1..10 ascending,
// scores in [250,300) and percentages in [80,100).
func (g *Generator) Leaderboard() []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, leaderboardSize)
	for i := range entries {
		entries[i] = models.LeaderboardEntry{
			Rank:       i + 1,
			Name:       fmt.Sprintf("Student %d", i+1),
			Score:      g.rng.Intn(50) + 250,
			Percentage: g.rng.Intn(20) + 80,
		}
	}
	return entries
}
