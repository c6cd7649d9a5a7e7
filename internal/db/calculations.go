package db

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// InsertCalculation records one calculator run in the local history.
func (db *DB) InsertCalculation(ctx context.Context, c models.Calculation) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting calculation: id=%s, exam=%s", c.ID, c.ExamSlug)

	_, err := db.ExecContext(ctx, `
INSERT INTO calculations (id, exam_slug, exam_name, category, rank, score, percentage, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.ExamSlug, c.ExamName, c.Category, c.Rank, c.Score, c.Percentage, c.Status, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert calculation: %v", err)
	}
	return err
}

// ListCalculations returns history rows matching the filter, newest first
// unless the filter asks otherwise.
func (db *DB) ListCalculations(ctx context.Context, filter models.CalculationFilter) ([]models.Calculation, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing calculations: exam=%s, status=%s", filter.ExamSlug, filter.Status)

	query := sqlBuilder.Select(
		"id", "exam_slug", "exam_name", "category", "rank", "score", "percentage", "status", "created_at",
	).From("calculations")

	// Dynamic WHERE clauses
	if filter.ExamSlug != "" {
		query = query.Where(squirrel.Eq{"exam_slug": filter.ExamSlug})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if !filter.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.Since})
	}

	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy("created_at " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list calculations: %v", err)
		return nil, err
	}
	defer rows.Close()

	var calcs []models.Calculation
	for rows.Next() {
		var c models.Calculation
		if err := rows.Scan(&c.ID, &c.ExamSlug, &c.ExamName, &c.Category, &c.Rank, &c.Score, &c.Percentage, &c.Status, &c.CreatedAt); err != nil {
			log.Error("failed to scan calculation row: %v", err)
			return nil, err
		}
		calcs = append(calcs, c)
	}
	log.Debug("found %d calculations", len(calcs))
	return calcs, rows.Err()
}

// CountCalculations counts history rows matching the filter.
func (db *DB) CountCalculations(ctx context.Context, filter models.CalculationFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	query := sqlBuilder.Select("COUNT(*)").From("calculations")
	if filter.ExamSlug != "" {
		query = query.Where(squirrel.Eq{"exam_slug": filter.ExamSlug})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if !filter.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.Since})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count calculations: %v", err)
		return 0, err
	}
	return count, nil
}
