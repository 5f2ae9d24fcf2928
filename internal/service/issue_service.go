package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
	"github.com/spec-kit/farm-helpdesk/internal/events"
	"github.com/spec-kit/farm-helpdesk/internal/repository"
	"github.com/spec-kit/farm-helpdesk/internal/summarizer"
	apperrors "github.com/spec-kit/farm-helpdesk/pkg/util"
)

// IssueService coordinates the issue lifecycle: creation, status
// transitions and admin responses.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	summaries  summarizer.Summarizer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	UserRepo   repository.UserRepository
	Summarizer summarizer.Summarizer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// IssueCreateInput describes issue submission payload.
type IssueCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.IssuePriority
	Location    *string
}

// IssueListFilter describes listing filters.
type IssueListFilter struct {
	Status   *domain.IssueStatus
	Category *string
	Priority *domain.IssuePriority
}

// IssuePage is one page of issues with pagination totals.
type IssuePage struct {
	Issues     []domain.Issue
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IssueService{
		issues:     deps.IssueRepo,
		users:      deps.UserRepo,
		summaries:  deps.Summarizer,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates and persists a new issue for a farmer. The advisory
// summary is best-effort: a summarizer failure never fails or delays
// creation beyond the single attempt.
func (s *IssueService) Create(ctx context.Context, farmerID string, input IssueCreateInput) (*domain.Issue, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)
	if title == "" || description == "" || category == "" {
		return nil, apperrors.NewValidationError("title, description and category are required")
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.IssuePriorityMedium
	}
	if !domain.ValidIssuePriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority")
	}

	farmer, err := s.users.GetByID(ctx, farmerID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewValidationError("unknown farmer")
		}
		return nil, err
	}

	issue := &domain.Issue{
		FarmerID:    farmer.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.IssueStatusPending,
		Priority:    priority,
		Location:    input.Location,
	}

	if s.summaries != nil {
		if text, err := s.summaries.Summarize(ctx, title, description, category); err != nil {
			s.logger.Warn("summary generation failed", zap.Error(err))
		} else {
			issue.Summary = &text
		}
	}

	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	issue.Farmer = farmer.FarmerInfo()

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		ActorID: farmer.ID,
		Payload: events.IssueCreatedPayload{
			FarmerID:   farmer.ID,
			Category:   issue.Category,
			Priority:   issue.Priority,
			Title:      issue.Title,
			Summarized: issue.Summary != nil,
		},
	})
	return issue, nil
}

// ListForFarmer returns a newest-first page of the farmer's own issues.
// Out-of-range pages yield an empty list, not an error.
func (s *IssueService) ListForFarmer(ctx context.Context, farmerID string, filter IssueListFilter, page, limit int) (*IssuePage, error) {
	repoFilter := repository.IssueFilter{
		FarmerID: &farmerID,
		Status:   filter.Status,
		Category: filter.Category,
		Priority: filter.Priority,
	}
	return s.listPage(ctx, repoFilter, "-createdAt", page, limit)
}

// ListAll returns a page of all issues for admins, with farmer details joined.
func (s *IssueService) ListAll(ctx context.Context, filter IssueListFilter, page, limit int, sort string) (*IssuePage, error) {
	repoFilter := repository.IssueFilter{
		Status:   filter.Status,
		Category: filter.Category,
		Priority: filter.Priority,
	}
	if sort == "" {
		sort = "-createdAt"
	}
	return s.listPage(ctx, repoFilter, sort, page, limit)
}

// GetByID fetches one issue with farmer details.
func (s *IssueService) GetByID(ctx context.Context, issueID string) (*domain.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, err
	}
	return issue, nil
}

// GetByIDForFarmer fetches one issue ensuring ownership. An issue belonging
// to another farmer reads as not found, never as a cross-farmer hint.
func (s *IssueService) GetByIDForFarmer(ctx context.Context, farmerID, issueID string) (*domain.Issue, error) {
	issue, err := s.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.FarmerID != farmerID {
		return nil, apperrors.NewNotFound("issue")
	}
	return issue, nil
}

// UpdateStatus transitions an issue to a new status. Transitions are
// unrestricted between the known states.
func (s *IssueService) UpdateStatus(ctx context.Context, issueID string, newStatus domain.IssueStatus) (*domain.Issue, error) {
	if !domain.ValidIssueStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status")
	}

	issue, err := s.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	issue.Status = newStatus
	if err := s.issues.Update(ctx, issue); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueStatusChanged,
		IssueID: issue.ID,
		Payload: events.IssueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return issue, nil
}

// Respond attaches an admin response to an issue.
func (s *IssueService) Respond(ctx context.Context, issueID, responseText string) (*domain.Issue, error) {
	text := strings.TrimSpace(responseText)
	if text == "" {
		return nil, apperrors.NewValidationError("adminResponse is required")
	}

	issue, err := s.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	issue.AdminResponse = &text
	if err := s.issues.Update(ctx, issue); err != nil {
		if apperrors.IsNoRows(err) {
			return nil, apperrors.NewNotFound("issue")
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueResponded,
		IssueID: issue.ID,
		Payload: events.IssueRespondedPayload{
			ResponsePreview: stringPreview(text, 120),
		},
	})
	return issue, nil
}

func (s *IssueService) listPage(ctx context.Context, filter repository.IssueFilter, sort string, page, limit int) (*IssuePage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := s.issues.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	issues, err := s.issues.List(ctx, filter, sort, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []domain.Issue{}
	}

	return &IssuePage{
		Issues:     issues,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
