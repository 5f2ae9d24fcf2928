package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
	"github.com/spec-kit/farm-helpdesk/internal/repository"
	"github.com/spec-kit/farm-helpdesk/internal/service"
)

func seedIssue(t *testing.T, repo *repository.MemoryIssueRepository, status domain.IssueStatus, category string, createdAt, updatedAt time.Time) {
	t.Helper()
	issue := &domain.Issue{
		FarmerID:    "farmer-1",
		Title:       "t",
		Description: "d",
		Category:    category,
		Status:      status,
		Priority:    domain.IssuePriorityMedium,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	require.NoError(t, repo.Create(context.Background(), issue))
}

// midMonth avoids day-of-month normalization surprises in AddDate arithmetic.
func midMonth(monthsAgo int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func TestSummaryGroupings(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)
	now := time.Now()

	seedIssue(t, repo, domain.IssueStatusPending, "Pest Management", now, now)
	seedIssue(t, repo, domain.IssueStatusPending, "Pest Management", now, now)
	seedIssue(t, repo, domain.IssueStatusResolved, "Pest Management", now, now)
	seedIssue(t, repo, domain.IssueStatusInProgress, "Irrigation", now, now)

	svc := service.NewAnalyticsService(repo)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalCount)

	// status labels ascend alphabetically
	assert.Equal(t, []string{"in_progress", "pending", "resolved"}, summary.StatusData.Labels)
	require.Len(t, summary.StatusData.Datasets, 1)
	assert.Equal(t, "Issues by Status", summary.StatusData.Datasets[0].Label)
	assert.Equal(t, []int{1, 2, 1}, summary.StatusData.Datasets[0].Data)

	// categories descend by count
	assert.Equal(t, []string{"Pest Management", "Irrigation"}, summary.CategoryData.Labels)
	assert.Equal(t, []int{3, 1}, summary.CategoryData.Datasets[0].Data)

	// under quiescence the status counts sum to the total
	sum := 0
	for _, n := range summary.StatusData.Datasets[0].Data {
		sum += n
	}
	assert.Equal(t, summary.TotalCount, sum)
}

func TestSummaryEmptyStore(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)
	svc := service.NewAnalyticsService(repo)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalCount)
	assert.Empty(t, summary.StatusData.Labels)
	assert.Empty(t, summary.CategoryData.Labels)
}

func TestTrendsEmptyWindow(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)
	// one ancient issue outside any reasonable window
	old := midMonth(24)
	seedIssue(t, repo, domain.IssueStatusPending, "Irrigation", old, old)

	svc := service.NewAnalyticsService(repo)
	trends, err := svc.Trends(context.Background(), 6)
	require.NoError(t, err)

	assert.Empty(t, trends.TrendsData.Labels)
	require.Len(t, trends.TrendsData.Datasets, 2)
	assert.Empty(t, trends.TrendsData.Datasets[0].Data)
	assert.Zero(t, trends.AverageResolutionTimeHours, "no resolved issues reports 0")
}

func TestTrendsMonthlyBuckets(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)

	twoAgo := midMonth(2)
	oneAgo := midMonth(1)

	// resolved issues count under their creation month, whatever month the
	// resolution happened in
	seedIssue(t, repo, domain.IssueStatusResolved, "Pest Management", twoAgo, oneAgo)
	seedIssue(t, repo, domain.IssueStatusPending, "Pest Management", twoAgo, twoAgo)
	seedIssue(t, repo, domain.IssueStatusPending, "Irrigation", oneAgo, oneAgo)

	svc := service.NewAnalyticsService(repo)
	trends, err := svc.Trends(context.Background(), 6)
	require.NoError(t, err)

	require.Equal(t, []string{monthLabel(twoAgo), monthLabel(oneAgo)}, trends.TrendsData.Labels, "buckets ascend chronologically")
	require.Len(t, trends.TrendsData.Datasets, 2)
	assert.Equal(t, "New Issues", trends.TrendsData.Datasets[0].Label)
	assert.Equal(t, []int{2, 1}, trends.TrendsData.Datasets[0].Data)
	assert.Equal(t, "Resolved", trends.TrendsData.Datasets[1].Label)
	assert.Equal(t, []int{1, 0}, trends.TrendsData.Datasets[1].Data)
}

func TestTrendsAverageResolutionRounding(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)

	created := midMonth(1)
	// two resolved issues: 5h and 2.5h → mean 3.75 → 3.8 after rounding
	seedIssue(t, repo, domain.IssueStatusResolved, "Irrigation", created, created.Add(5*time.Hour))
	seedIssue(t, repo, domain.IssueStatusResolved, "Irrigation", created, created.Add(150*time.Minute))
	// unresolved issues do not contribute
	seedIssue(t, repo, domain.IssueStatusInProgress, "Irrigation", created, created.Add(100*time.Hour))

	svc := service.NewAnalyticsService(repo)
	trends, err := svc.Trends(context.Background(), 6)
	require.NoError(t, err)
	assert.InDelta(t, 3.8, trends.AverageResolutionTimeHours, 0.0001)
}

func TestTrendsDefaultWindow(t *testing.T) {
	repo := repository.NewMemoryIssueRepository(nil)
	inside := midMonth(5)
	outside := midMonth(8)
	seedIssue(t, repo, domain.IssueStatusPending, "Irrigation", inside, inside)
	seedIssue(t, repo, domain.IssueStatusPending, "Irrigation", outside, outside)

	svc := service.NewAnalyticsService(repo)
	trends, err := svc.Trends(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{monthLabel(inside)}, trends.TrendsData.Labels)
}
