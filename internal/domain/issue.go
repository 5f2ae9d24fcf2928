package domain

import "time"

// IssueStatus enumerates lifecycle states for farmer issues.
type IssueStatus string

const (
	IssueStatusPending    IssueStatus = "pending"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusResolved   IssueStatus = "resolved"
)

// ValidIssueStatus reports whether the value is one of the known states.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusPending, IssueStatusInProgress, IssueStatusResolved:
		return true
	}
	return false
}

// IssuePriority enumerates urgency levels.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "low"
	IssuePriorityMedium IssuePriority = "medium"
	IssuePriorityHigh   IssuePriority = "high"
	IssuePriorityUrgent IssuePriority = "urgent"
)

// ValidIssuePriority reports whether the value is a known priority.
func ValidIssuePriority(p IssuePriority) bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityUrgent:
		return true
	}
	return false
}

// Issue is the aggregate for farmer-reported problems.
type Issue struct {
	ID            string
	FarmerID      string
	Title         string
	Description   string
	Category      string
	Status        IssueStatus
	Priority      IssuePriority
	Location      *string
	AdminResponse *string
	Summary       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Farmer is populated when the record is fetched with submitter details
	// joined for display.
	Farmer *FarmerInfo
}

// FarmerInfo is the denormalized submitter view attached to issues.
type FarmerInfo struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	District string
}
