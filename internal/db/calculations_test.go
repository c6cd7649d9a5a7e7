package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/examranking/rankcalc/internal/db"
	"github.com/examranking/rankcalc/internal/models"
	"github.com/examranking/rankcalc/internal/testutil"
)

type CalculationsSuite struct {
	suite.Suite
	db *db.DB
}

func (s *CalculationsSuite) SetupTest() {
	s.db = db.New(testutil.NewTestDB(s.T()))
}

func (s *CalculationsSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CalculationsSuite) insert(slug, status string, createdAt time.Time) models.Calculation {
	c := models.Calculation{
		ID:         uuid.NewString(),
		ExamSlug:   slug,
		ExamName:   slug,
		Category:   "General",
		Rank:       1234,
		Score:      210,
		Percentage: 70.0,
		Status:     status,
		CreatedAt:  createdAt,
	}
	s.Require().NoError(s.db.InsertCalculation(context.Background(), c))
	return c
}

func (s *CalculationsSuite) TestInsertAndList() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older := s.insert("ssc-cgl", models.CalculationCompleted, now.Add(-time.Hour))
	newer := s.insert("jee-main", models.CalculationCompleted, now)

	calcs, err := s.db.ListCalculations(ctx, models.CalculationFilter{})
	s.Require().NoError(err)
	s.Require().Len(calcs, 2)

	// Newest first by default.
	s.Equal(newer.ID, calcs[0].ID)
	s.Equal(older.ID, calcs[1].ID)
	s.Equal("jee-main", calcs[0].ExamSlug)
	s.Equal(210, calcs[0].Score)
	s.InDelta(70.0, calcs[0].Percentage, 0.0001)
}

func (s *CalculationsSuite) TestListFiltersByExamAndStatus() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.insert("ssc-cgl", models.CalculationCompleted, now)
	s.insert("ssc-cgl", models.CalculationFailed, now)
	s.insert("jee-main", models.CalculationCompleted, now)

	bySlug, err := s.db.ListCalculations(ctx, models.CalculationFilter{ExamSlug: "ssc-cgl"})
	s.Require().NoError(err)
	s.Len(bySlug, 2)

	byStatus, err := s.db.ListCalculations(ctx, models.CalculationFilter{Status: models.CalculationFailed})
	s.Require().NoError(err)
	s.Require().Len(byStatus, 1)
	s.Equal("ssc-cgl", byStatus[0].ExamSlug)

	both, err := s.db.ListCalculations(ctx, models.CalculationFilter{ExamSlug: "jee-main", Status: models.CalculationFailed})
	s.Require().NoError(err)
	s.Empty(both)
}

func (s *CalculationsSuite) TestListSinceAndPagination() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.insert("gate", models.CalculationCompleted, now.Add(-48*time.Hour))
	s.insert("gate", models.CalculationCompleted, now.Add(-time.Hour))
	s.insert("gate", models.CalculationCompleted, now)

	recent, err := s.db.ListCalculations(ctx, models.CalculationFilter{Since: now.Add(-2 * time.Hour)})
	s.Require().NoError(err)
	s.Len(recent, 2)

	paged, err := s.db.ListCalculations(ctx, models.CalculationFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(paged, 1)

	ascending, err := s.db.ListCalculations(ctx, models.CalculationFilter{OrderDir: "ASC"})
	s.Require().NoError(err)
	s.Require().Len(ascending, 3)
	s.True(ascending[0].CreatedAt.Before(ascending[2].CreatedAt))
}

func (s *CalculationsSuite) TestCount() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.insert("cat", models.CalculationCompleted, now.Add(-40*24*time.Hour))
	s.insert("cat", models.CalculationCompleted, now)

	total, err := s.db.CountCalculations(ctx, models.CalculationFilter{})
	s.Require().NoError(err)
	s.Equal(2, total)

	thisMonth, err := s.db.CountCalculations(ctx, models.CalculationFilter{Since: now.Add(-30 * 24 * time.Hour)})
	s.Require().NoError(err)
	s.Equal(1, thisMonth)
}

func TestCalculationsSuite(t *testing.T) {
	suite.Run(t, new(CalculationsSuite))
}
