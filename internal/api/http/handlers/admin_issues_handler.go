package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/farm-helpdesk/internal/api/dto"
	"github.com/spec-kit/farm-helpdesk/internal/service"
	apperrors "github.com/spec-kit/farm-helpdesk/pkg/util"
)

// AdminIssuesHandler manages admin-scoped issue endpoints.
type AdminIssuesHandler struct {
	service *service.IssueService
}

// NewAdminIssuesHandler constructs handler.
func NewAdminIssuesHandler(issueService *service.IssueService) *AdminIssuesHandler {
	return &AdminIssuesHandler{service: issueService}
}

// ListIssues GET /admin/issues.
func (h *AdminIssuesHandler) ListIssues(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	result, err := h.service.ListAll(c.Context(), parseIssueFilter(c), page, limit, c.Query("sort"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Issues fetched successfully", issueListResponse(result)))
}

// GetIssue GET /admin/issues/:id.
func (h *AdminIssuesHandler) GetIssue(c *fiber.Ctx) error {
	issue, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Issue fetched", issueResponse(issue)))
}

// UpdateStatus PATCH /admin/issues/:id/status.
func (h *AdminIssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	issue, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Status updated", issueResponse(issue)))
}

// Respond PATCH /admin/issues/:id/respond.
func (h *AdminIssuesHandler) Respond(c *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	issue, err := h.service.Respond(c.Context(), c.Params("id"), req.AdminResponse)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Response added", issueResponse(issue)))
}
