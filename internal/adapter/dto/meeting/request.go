package meeting

// ProcessOptions is the JSON carried in the "input" form field of an upload.
// Missing fields fall back to the same defaults the backend assumes.
type ProcessOptions struct {
	Language                string `json:"language"`
	NotifySlack             bool   `json:"notify_slack"`
	Channel                 string `json:"channel"`
	Industry                string `json:"industry"`
	UserID                  string `json:"user_id"`
	MeetingTitle            string `json:"meeting_title"`
	CustomPromptDescription string `json:"custom_prompt_description"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (o *ProcessOptions) ApplyDefaults() {
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Industry == "" {
		o.Industry = "General"
	}
	if o.UserID == "" {
		o.UserID = "anonymous"
	}
	if o.MeetingTitle == "" {
		o.MeetingTitle = "Untitled Meeting"
	}
	if !o.NotifySlack {
		o.Channel = ""
	}
}

// FeedbackRequest represents a rating submission for a meeting
type FeedbackRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comments  string `json:"comments"`
}
