package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
)

// IssueFilter captures list query parameters.
type IssueFilter struct {
	FarmerID *string
	Status   *domain.IssueStatus
	Category *string
	Priority *domain.IssuePriority
}

// IssueRepository encapsulates issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Update(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	List(ctx context.Context, filter IssueFilter, sort string, limit, offset int) ([]domain.Issue, error)
	Count(ctx context.Context, filter IssueFilter) (int, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates a Postgres-backed repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

const issueColumns = `i.id, i.farmer_id, i.title, i.description, i.category, i.status, i.priority,
               i.location, i.admin_response, i.summary, i.created_at, i.updated_at,
               u.id, u.name, u.email, u.phone, u.district`

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (farmer_id, title, description, category, status, priority, location, summary)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		issue.FarmerID,
		issue.Title,
		issue.Description,
		issue.Category,
		issue.Status,
		issue.Priority,
		issue.Location,
		issue.Summary,
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET status=$1, priority=$2, admin_response=$3, summary=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		issue.Status,
		issue.Priority,
		issue.AdminResponse,
		issue.Summary,
		issue.ID,
	).Scan(&issue.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM issues i
        JOIN users u ON u.id = i.farmer_id
        WHERE i.id=$1`, issueColumns)

	row := r.pool.QueryRow(ctx, query, id)
	issue, err := scanIssueRow(row)
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func (r *issueRepository) List(ctx context.Context, filter IssueFilter, sort string, limit, offset int) ([]domain.Issue, error) {
	clauses, args := buildIssueClauses(filter)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s
             FROM issues i
             JOIN users u ON u.id = i.farmer_id
             WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		issueColumns, strings.Join(clauses, " AND "), orderClause(sort), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *issueRepository) Count(ctx context.Context, filter IssueFilter) (int, error) {
	clauses, args := buildIssueClauses(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM issues i WHERE %s`, strings.Join(clauses, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func buildIssueClauses(filter IssueFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.FarmerID != nil {
		args = append(args, *filter.FarmerID)
		clauses = append(clauses, fmt.Sprintf("i.farmer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("i.status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("i.category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("i.priority=$%d", len(args)))
	}
	return clauses, args
}

// orderClause whitelists sort keys; anything unrecognized falls back to
// newest-first by creation time. A leading '-' requests descending order.
func orderClause(sort string) string {
	desc := strings.HasPrefix(sort, "-")
	key := strings.TrimPrefix(sort, "-")

	column := ""
	switch key {
	case "createdAt":
		column = "i.created_at"
	case "updatedAt":
		column = "i.updated_at"
	case "priority":
		column = "i.priority"
	case "status":
		column = "i.status"
	}
	if column == "" {
		return "i.created_at DESC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIssueRow(row rowScanner) (*domain.Issue, error) {
	var issue domain.Issue
	var farmer domain.FarmerInfo
	if err := row.Scan(
		&issue.ID,
		&issue.FarmerID,
		&issue.Title,
		&issue.Description,
		&issue.Category,
		&issue.Status,
		&issue.Priority,
		&issue.Location,
		&issue.AdminResponse,
		&issue.Summary,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&farmer.ID,
		&farmer.Name,
		&farmer.Email,
		&farmer.Phone,
		&farmer.District,
	); err != nil {
		return nil, err
	}
	issue.Farmer = &farmer
	return &issue, nil
}

func scanIssues(rows pgx.Rows) ([]domain.Issue, error) {
	var result []domain.Issue
	for rows.Next() {
		issue, err := scanIssueRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *issue)
	}
	return result, rows.Err()
}
