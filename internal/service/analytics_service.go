package service

import (
	"context"
	"math"
	"time"

	"github.com/spec-kit/farm-helpdesk/internal/repository"
)

// defaultTrendWindowMonths is the trailing window for trend queries.
const defaultTrendWindowMonths = 6

// ChartDataset is one labelled series in a chart.
type ChartDataset struct {
	Label string
	Data  []int
}

// ChartData is the label/dataset shape the dashboard charts consume.
type ChartData struct {
	Labels   []string
	Datasets []ChartDataset
}

// AnalyticsSummary holds grouped counts over all issues.
type AnalyticsSummary struct {
	StatusData   ChartData
	CategoryData ChartData
	TotalCount   int
}

// AnalyticsTrends holds the monthly trend series and resolution average.
type AnalyticsTrends struct {
	TrendsData                 ChartData
	AverageResolutionTimeHours float64
}

// AnalyticsService computes read-only statistics over the issue store.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, now: time.Now}
}

// Summary groups issues by status (ascending) and by category (descending by
// count) plus the overall total. The three aggregates run as independent
// queries; a write racing between them can skew counts across groupings,
// which is accepted rather than coordinated away.
func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	statusCounts, err := s.analytics.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	categoryCounts, err := s.analytics.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.analytics.CountTotal(ctx)
	if err != nil {
		return nil, err
	}

	statusData := ChartData{
		Labels:   make([]string, 0, len(statusCounts)),
		Datasets: []ChartDataset{{Label: "Issues by Status", Data: make([]int, 0, len(statusCounts))}},
	}
	for _, row := range statusCounts {
		statusData.Labels = append(statusData.Labels, string(row.Status))
		statusData.Datasets[0].Data = append(statusData.Datasets[0].Data, row.Count)
	}

	categoryData := ChartData{
		Labels:   make([]string, 0, len(categoryCounts)),
		Datasets: []ChartDataset{{Label: "Issues by Category", Data: make([]int, 0, len(categoryCounts))}},
	}
	for _, row := range categoryCounts {
		categoryData.Labels = append(categoryData.Labels, row.Category)
		categoryData.Datasets[0].Data = append(categoryData.Datasets[0].Data, row.Count)
	}

	return &AnalyticsSummary{
		StatusData:   statusData,
		CategoryData: categoryData,
		TotalCount:   total,
	}, nil
}

// Trends buckets issues created in the trailing window by calendar month.
// Resolved issues are counted under their creation month, not the month
// resolution happened; the dashboard depends on this exact attribution.
// Months without issues are omitted, so the series is sparse.
func (s *AnalyticsService) Trends(ctx context.Context, windowMonths int) (*AnalyticsTrends, error) {
	if windowMonths <= 0 {
		windowMonths = defaultTrendWindowMonths
	}
	since := s.now().AddDate(0, -windowMonths, 0)

	trends, err := s.analytics.MonthlyTrends(ctx, since)
	if err != nil {
		return nil, err
	}
	avgHours, err := s.analytics.AverageResolutionHours(ctx)
	if err != nil {
		return nil, err
	}

	trendsData := ChartData{
		Labels: make([]string, 0, len(trends)),
		Datasets: []ChartDataset{
			{Label: "New Issues", Data: make([]int, 0, len(trends))},
			{Label: "Resolved", Data: make([]int, 0, len(trends))},
		},
	}
	for _, row := range trends {
		label := time.Date(row.Year, row.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		trendsData.Labels = append(trendsData.Labels, label)
		trendsData.Datasets[0].Data = append(trendsData.Datasets[0].Data, row.Total)
		trendsData.Datasets[1].Data = append(trendsData.Datasets[1].Data, row.Resolved)
	}

	return &AnalyticsTrends{
		TrendsData:                 trendsData,
		AverageResolutionTimeHours: math.Round(avgHours*10) / 10,
	}, nil
}
