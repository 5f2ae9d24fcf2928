// Package summarizer produces short advisory summaries for new issues by
// delegating to an external text-generation service.
package summarizer

import "context"

// Summarizer generates a 2-3 line advisory synopsis for a farmer issue.
// Implementations make a single attempt; callers decide what a failure means.
type Summarizer interface {
	Summarize(ctx context.Context, title, description, category string) (string, error)
}
