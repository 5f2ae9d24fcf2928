package dto

// ChartDatasetResponse is one labelled series.
type ChartDatasetResponse struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// ChartDataResponse is the chart-ready label/dataset shape.
type ChartDataResponse struct {
	Labels   []string               `json:"labels"`
	Datasets []ChartDatasetResponse `json:"datasets"`
}

// AnalyticsSummaryResponse groups counts by status and category.
type AnalyticsSummaryResponse struct {
	StatusData   ChartDataResponse `json:"statusData"`
	CategoryData ChartDataResponse `json:"categoryData"`
	TotalCount   int               `json:"totalCount"`
}

// AnalyticsTrendsResponse holds the monthly series and resolution average.
type AnalyticsTrendsResponse struct {
	TrendsData                 ChartDataResponse `json:"trendsData"`
	AverageResolutionTimeHours float64           `json:"averageResolutionTimeHours"`
}
