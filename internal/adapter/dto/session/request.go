package session

// StartRequest represents the request to start a real-time recording session
type StartRequest struct {
	Language                string `json:"language"`
	Industry                string `json:"industry"`
	UserID                  string `json:"user_id"`
	MeetingTitle            string `json:"meeting_title"`
	CustomPromptDescription string `json:"custom_prompt_description"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (r *StartRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = "en"
	}
	if r.Industry == "" {
		r.Industry = "General"
	}
	if r.UserID == "" {
		r.UserID = "anonymous"
	}
	if r.MeetingTitle == "" {
		r.MeetingTitle = "Real-Time Meeting"
	}
}
