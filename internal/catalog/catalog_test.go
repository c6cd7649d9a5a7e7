package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examranking/rankcalc/internal/catalog"
	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/models"
)

func TestStatic_ListIsOrderedAndNonEmpty(t *testing.T) {
	c, err := catalog.NewStatic()
	require.NoError(t, err)

	exams, err := c.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, exams)

	for _, exam := range exams {
		assert.NotEmpty(t, exam.Slug)
		assert.NotEmpty(t, exam.Name)
		assert.NotEmpty(t, exam.Subjects, "exam %s must list subjects", exam.Slug)
		assert.Positive(t, exam.TotalMarks, "exam %s must have positive total marks", exam.Slug)
	}
}

func TestStatic_FindBySlugRoundTripsEveryListedSlug(t *testing.T) {
	c, err := catalog.NewStatic()
	require.NoError(t, err)

	ctx := context.Background()
	exams, err := c.List(ctx)
	require.NoError(t, err)

	for _, exam := range exams {
		found, err := c.FindBySlug(ctx, exam.Slug)
		require.NoError(t, err, "slug %s", exam.Slug)
		require.NotNil(t, found)
		assert.Equal(t, exam.Slug, found.Slug)
		assert.Equal(t, exam.Name, found.Name)
	}
}

func TestStatic_FindBySlugNotFound(t *testing.T) {
	c, err := catalog.NewStatic()
	require.NoError(t, err)

	exam, err := c.FindBySlug(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Nil(t, exam)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func sampleExams() []models.Exam {
	return []models.Exam{
		{Slug: "jee-main", Name: "JEE Main", Description: "Engineering entrance", Category: "Engineering", Subjects: []string{"Physics", "Chemistry", "Mathematics"}},
		{Slug: "neet-ug", Name: "NEET UG", Description: "Medical entrance", Category: "Medical", Subjects: []string{"Physics", "Chemistry", "Biology"}},
		{Slug: "cat", Name: "CAT", Description: "Management admission test", Category: "Management", Subjects: []string{"Quantitative Ability"}},
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	got := catalog.Filter(sampleExams(), models.ExamFilter{Category: "Medical"})
	require.Len(t, got, 1)
	assert.Equal(t, "neet-ug", got[0].Slug)
}

func TestFilter_AllCategoryMatchesEverything(t *testing.T) {
	assert.Len(t, catalog.Filter(sampleExams(), models.ExamFilter{Category: "All"}), 3)
	assert.Len(t, catalog.Filter(sampleExams(), models.ExamFilter{}), 3)
}

func TestFilter_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		name  string
		query string
		slugs []string
	}{
		{name: "matches name", query: "jee", slugs: []string{"jee-main"}},
		{name: "matches description", query: "MANAGEMENT", slugs: []string{"cat"}},
		{name: "matches subject", query: "biology", slugs: []string{"neet-ug"}},
		{name: "matches across fields", query: "chemistry", slugs: []string{"jee-main", "neet-ug"}},
		{name: "no match", query: "history", slugs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Filter(sampleExams(), models.ExamFilter{Query: tt.query})
			var slugs []string
			for _, e := range got {
				slugs = append(slugs, e.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}

func TestFilter_CategoryAndQueryCombine(t *testing.T) {
	got := catalog.Filter(sampleExams(), models.ExamFilter{Category: "Engineering", Query: "chemistry"})
	require.Len(t, got, 1)
	assert.Equal(t, "jee-main", got[0].Slug)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	exams := sampleExams()
	catalog.Filter(exams, models.ExamFilter{Category: "Medical", Query: "physics"})
	assert.Equal(t, sampleExams(), exams)
}

func TestCategories_DistinctFirstSeenOrder(t *testing.T) {
	exams := append(sampleExams(), models.Exam{Slug: "gate", Category: "Engineering"})
	got := catalog.Categories(exams)
	assert.Equal(t, []string{"Engineering", "Medical", "Management"}, got)
}

func TestFindBySlug_FirstMatchWinsOnDuplicates(t *testing.T) {
	dupes := []models.Exam{
		{Slug: "gate", Name: "GATE (first)"},
		{Slug: "gate", Name: "GATE (second)"},
	}
	remote := catalog.NewRemote(stubClient{exams: dupes})

	found, err := remote.FindBySlug(context.Background(), "gate")
	require.NoError(t, err)
	assert.Equal(t, "GATE (first)", found.Name)
}

type stubClient struct {
	exams []models.Exam
	err   error
}

func (s stubClient) ListExams(ctx context.Context) ([]models.Exam, error) {
	return s.exams, s.err
}

func (s stubClient) Signup(ctx context.Context, name, email, password string) (string, *models.User, error) {
	return "", nil, nil
}

func (s stubClient) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	return "", nil, nil
}

func (s stubClient) Dashboard(ctx context.Context, token string) (*models.DashboardData, error) {
	return nil, nil
}

func TestRemote_ListErrorPropagatesCatalogUnavailable(t *testing.T) {
	remote := catalog.NewRemote(stubClient{err: apperrors.NewCatalogUnavailableError(nil)})

	_, err := remote.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable))

	_, err = remote.FindBySlug(context.Background(), "gate")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCatalogUnavailable))
}
