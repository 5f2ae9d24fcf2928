package dto

import (
	"time"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Priority    domain.IssuePriority `json:"priority"`
	Location    *string              `json:"location"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// RespondRequest payload.
type RespondRequest struct {
	AdminResponse string `json:"adminResponse"`
}

// FarmerResponse is the submitter view joined onto issues.
type FarmerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	District string `json:"district"`
}

// IssueResponse is the full issue view.
type IssueResponse struct {
	ID            string               `json:"id"`
	FarmerID      string               `json:"farmerId"`
	Farmer        *FarmerResponse      `json:"farmer,omitempty"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Status        domain.IssueStatus   `json:"status"`
	Priority      domain.IssuePriority `json:"priority"`
	Location      *string              `json:"location,omitempty"`
	AdminResponse *string              `json:"adminResponse,omitempty"`
	Summary       *string              `json:"summary,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// IssueListResponse is one page of issues with pagination totals.
type IssueListResponse struct {
	Issues     []IssueResponse `json:"issues"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}
