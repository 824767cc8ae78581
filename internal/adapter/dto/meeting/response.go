package meeting

import "github.com/claritynotes/clarity-client/internal/domain/entities"

// InsightView is the render-ready shape of a processed meeting: each loose
// union in the backend payload resolved to a single displayable value.
type InsightView struct {
	Summary     string                `json:"summary"`
	Sentiment   string                `json:"sentiment,omitempty"`
	ActionItems []entities.ActionItem `json:"action_items"`
	Transcript  string                `json:"transcript"`
}

// MeetingsResponse wraps the roster
type MeetingsResponse struct {
	Meetings []entities.MeetingSummary `json:"meetings"`
}
