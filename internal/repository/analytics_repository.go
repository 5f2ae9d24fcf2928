package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
)

// StatusCount is a per-status aggregate row.
type StatusCount struct {
	Status domain.IssueStatus
	Count  int
}

// CategoryCount is a per-category aggregate row.
type CategoryCount struct {
	Category string
	Count    int
}

// MonthlyTrend buckets issue creation by calendar month. Resolved counts
// issues currently in resolved status, attributed to their creation month.
type MonthlyTrend struct {
	Year     int
	Month    time.Month
	Total    int
	Resolved int
}

// AnalyticsRepository exposes read-only aggregates over the issue store.
// Sub-queries run independently; callers accept read skew between them.
type AnalyticsRepository interface {
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountTotal(ctx context.Context) (int, error)
	MonthlyTrends(ctx context.Context, since time.Time) ([]MonthlyTrend, error)
	AverageResolutionHours(ctx context.Context) (float64, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository instantiates a Postgres-backed aggregator.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	const query = `
        SELECT status, COUNT(*) FROM issues
        GROUP BY status ORDER BY status ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var row StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	const query = `
        SELECT category, COUNT(*) FROM issues
        GROUP BY category ORDER BY COUNT(*) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CategoryCount
	for rows.Next() {
		var row CategoryCount
		if err := rows.Scan(&row.Category, &row.Count); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) CountTotal(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM issues`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *analyticsRepository) MonthlyTrends(ctx context.Context, since time.Time) ([]MonthlyTrend, error) {
	const query = `
        SELECT EXTRACT(YEAR FROM created_at)::int,
               EXTRACT(MONTH FROM created_at)::int,
               COUNT(*),
               COUNT(*) FILTER (WHERE status = 'resolved')
        FROM issues
        WHERE created_at >= $1
        GROUP BY 1, 2
        ORDER BY 1 ASC, 2 ASC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyTrend
	for rows.Next() {
		var row MonthlyTrend
		var month int
		if err := rows.Scan(&row.Year, &month, &row.Total, &row.Resolved); err != nil {
			return nil, err
		}
		row.Month = time.Month(month)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *analyticsRepository) AverageResolutionHours(ctx context.Context) (float64, error) {
	const query = `
        SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600.0), 0)
        FROM issues WHERE status = 'resolved'`

	var hours float64
	if err := r.pool.QueryRow(ctx, query).Scan(&hours); err != nil {
		return 0, err
	}
	return hours, nil
}
