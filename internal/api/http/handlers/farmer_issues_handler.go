package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/farm-helpdesk/internal/api/dto"
	"github.com/spec-kit/farm-helpdesk/internal/auth"
	"github.com/spec-kit/farm-helpdesk/internal/service"
	apperrors "github.com/spec-kit/farm-helpdesk/pkg/util"
)

// FarmerIssuesHandler manages farmer-scoped issue endpoints.
type FarmerIssuesHandler struct {
	service *service.IssueService
}

// NewFarmerIssuesHandler constructs handler.
func NewFarmerIssuesHandler(issueService *service.IssueService) *FarmerIssuesHandler {
	return &FarmerIssuesHandler{service: issueService}
}

// CreateIssue POST /farmer/issues.
func (h *FarmerIssuesHandler) CreateIssue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("farmer required")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	issue, err := h.service.Create(c.Context(), principal.User.ID, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Issue created successfully", issueResponse(issue)))
}

// ListIssues GET /farmer/issues.
func (h *FarmerIssuesHandler) ListIssues(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("farmer required")
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListForFarmer(c.Context(), principal.User.ID, parseIssueFilter(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Farmer issues fetched", issueListResponse(result)))
}

// GetIssue GET /farmer/issues/:id.
func (h *FarmerIssuesHandler) GetIssue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("farmer required")
	}

	issue, err := h.service.GetByIDForFarmer(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Issue fetched", issueResponse(issue)))
}
