package events

import (
	"time"

	"github.com/spec-kit/farm-helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated       EventType = "issue_created"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventIssueResponded     EventType = "issue_responded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	FarmerID   string               `json:"farmer_id"`
	Category   string               `json:"category"`
	Priority   domain.IssuePriority `json:"priority"`
	Title      string               `json:"title"`
	Summarized bool                 `json:"summarized"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// IssueRespondedPayload payload.
type IssueRespondedPayload struct {
	ResponsePreview string `json:"response_preview"`
}
