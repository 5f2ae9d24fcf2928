package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
)

// MemoryUserRepository is a mutex-guarded in-memory UserRepository. It backs
// tests and DSN-less local runs.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// MemoryIssueRepository implements IssueRepository and AnalyticsRepository
// over an in-memory map. Farmer details are joined from the user store.
type MemoryIssueRepository struct {
	mu     sync.RWMutex
	issues map[string]domain.Issue
	users  *MemoryUserRepository
}

// NewMemoryIssueRepository creates an empty in-memory issue store.
func NewMemoryIssueRepository(users *MemoryUserRepository) *MemoryIssueRepository {
	return &MemoryIssueRepository{issues: make(map[string]domain.Issue), users: users}
}

func (r *MemoryIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.CreatedAt.IsZero() {
		now := time.Now()
		issue.CreatedAt = now
		issue.UpdatedAt = now
	}
	stored := *issue
	stored.Farmer = nil
	r.issues[issue.ID] = stored
	r.mu.Unlock()

	r.joinFarmer(ctx, issue)
	return nil
}

func (r *MemoryIssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	if _, ok := r.issues[issue.ID]; !ok {
		r.mu.Unlock()
		return pgx.ErrNoRows
	}
	issue.UpdatedAt = time.Now()
	stored := *issue
	stored.Farmer = nil
	r.issues[issue.ID] = stored
	r.mu.Unlock()

	r.joinFarmer(ctx, issue)
	return nil
}

func (r *MemoryIssueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	r.mu.RLock()
	issue, ok := r.issues[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.joinFarmer(ctx, &issue)
	return &issue, nil
}

func (r *MemoryIssueRepository) List(ctx context.Context, filter IssueFilter, sortKey string, limit, offset int) ([]domain.Issue, error) {
	matched := r.filtered(filter)
	sortIssues(matched, sortKey)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := matched[offset:end]
	for i := range page {
		r.joinFarmer(ctx, &page[i])
	}
	return page, nil
}

func (r *MemoryIssueRepository) Count(_ context.Context, filter IssueFilter) (int, error) {
	return len(r.filtered(filter)), nil
}

func (r *MemoryIssueRepository) CountByStatus(_ context.Context) ([]StatusCount, error) {
	r.mu.RLock()
	counts := make(map[domain.IssueStatus]int)
	for _, issue := range r.issues {
		counts[issue.Status]++
	}
	r.mu.RUnlock()

	result := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, StatusCount{Status: status, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })
	return result, nil
}

func (r *MemoryIssueRepository) CountByCategory(_ context.Context) ([]CategoryCount, error) {
	r.mu.RLock()
	counts := make(map[string]int)
	for _, issue := range r.issues {
		counts[issue.Category]++
	}
	r.mu.RUnlock()

	result := make([]CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, CategoryCount{Category: category, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })
	return result, nil
}

func (r *MemoryIssueRepository) CountTotal(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.issues), nil
}

func (r *MemoryIssueRepository) MonthlyTrends(_ context.Context, since time.Time) ([]MonthlyTrend, error) {
	type bucket struct {
		year  int
		month time.Month
	}
	r.mu.RLock()
	buckets := make(map[bucket]*MonthlyTrend)
	for _, issue := range r.issues {
		if issue.CreatedAt.Before(since) {
			continue
		}
		key := bucket{year: issue.CreatedAt.Year(), month: issue.CreatedAt.Month()}
		trend, ok := buckets[key]
		if !ok {
			trend = &MonthlyTrend{Year: key.year, Month: key.month}
			buckets[key] = trend
		}
		trend.Total++
		if issue.Status == domain.IssueStatusResolved {
			trend.Resolved++
		}
	}
	r.mu.RUnlock()

	result := make([]MonthlyTrend, 0, len(buckets))
	for _, trend := range buckets {
		result = append(result, *trend)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

func (r *MemoryIssueRepository) AverageResolutionHours(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	var count int
	for _, issue := range r.issues {
		if issue.Status != domain.IssueStatusResolved {
			continue
		}
		sum += issue.UpdatedAt.Sub(issue.CreatedAt).Hours()
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (r *MemoryIssueRepository) filtered(filter IssueFilter) []domain.Issue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Issue
	for _, issue := range r.issues {
		if filter.FarmerID != nil && issue.FarmerID != *filter.FarmerID {
			continue
		}
		if filter.Status != nil && issue.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && issue.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && issue.Priority != *filter.Priority {
			continue
		}
		matched = append(matched, issue)
	}
	return matched
}

func (r *MemoryIssueRepository) joinFarmer(ctx context.Context, issue *domain.Issue) {
	if r.users == nil {
		return
	}
	user, err := r.users.GetByID(ctx, issue.FarmerID)
	if err != nil {
		return
	}
	issue.Farmer = user.FarmerInfo()
}

func sortIssues(issues []domain.Issue, sortKey string) {
	desc := strings.HasPrefix(sortKey, "-")
	key := strings.TrimPrefix(sortKey, "-")

	var less func(a, b domain.Issue) bool
	switch key {
	case "createdAt":
		less = func(a, b domain.Issue) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		less = func(a, b domain.Issue) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "priority":
		less = func(a, b domain.Issue) bool { return a.Priority < b.Priority }
	case "status":
		less = func(a, b domain.Issue) bool { return a.Status < b.Status }
	default:
		// unknown keys fall back to newest-first
		less = func(a, b domain.Issue) bool { return a.CreatedAt.Before(b.CreatedAt) }
		desc = true
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if desc {
			return less(issues[j], issues[i])
		}
		return less(issues[i], issues[j])
	})
}
