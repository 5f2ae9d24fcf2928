package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/farm-helpdesk/internal/api/dto"
	"github.com/spec-kit/farm-helpdesk/internal/domain"
	"github.com/spec-kit/farm-helpdesk/internal/service"
)

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func parsePagination(c *fiber.Ctx) (page, limit int) {
	return parseInt(c.Query("page"), 1), parseInt(c.Query("limit"), 10)
}

func parseIssueFilter(c *fiber.Ctx) service.IssueListFilter {
	filter := service.IssueListFilter{}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := domain.IssueStatus(status)
		filter.Status = &s
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = &category
	}
	if priority := strings.TrimSpace(c.Query("priority")); priority != "" {
		p := domain.IssuePriority(priority)
		filter.Priority = &p
	}
	return filter
}

func issueResponse(issue *domain.Issue) dto.IssueResponse {
	resp := dto.IssueResponse{
		ID:            issue.ID,
		FarmerID:      issue.FarmerID,
		Title:         issue.Title,
		Description:   issue.Description,
		Category:      issue.Category,
		Status:        issue.Status,
		Priority:      issue.Priority,
		Location:      issue.Location,
		AdminResponse: issue.AdminResponse,
		Summary:       issue.Summary,
		CreatedAt:     issue.CreatedAt,
		UpdatedAt:     issue.UpdatedAt,
	}
	if issue.Farmer != nil {
		resp.Farmer = &dto.FarmerResponse{
			ID:       issue.Farmer.ID,
			Name:     issue.Farmer.Name,
			Email:    issue.Farmer.Email,
			Phone:    issue.Farmer.Phone,
			District: issue.Farmer.District,
		}
	}
	return resp
}

func issueListResponse(page *service.IssuePage) dto.IssueListResponse {
	issues := make([]dto.IssueResponse, 0, len(page.Issues))
	for i := range page.Issues {
		issues = append(issues, issueResponse(&page.Issues[i]))
	}
	return dto.IssueListResponse{
		Issues:     issues,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		District:  user.District,
		CreatedAt: user.CreatedAt,
	}
}

func chartDataResponse(data service.ChartData) dto.ChartDataResponse {
	datasets := make([]dto.ChartDatasetResponse, 0, len(data.Datasets))
	for _, ds := range data.Datasets {
		datasets = append(datasets, dto.ChartDatasetResponse{Label: ds.Label, Data: ds.Data})
	}
	return dto.ChartDataResponse{Labels: data.Labels, Datasets: datasets}
}
