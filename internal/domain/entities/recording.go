package entities

// RecordingConfig is the configuration sent when starting a real-time
// recording session.
type RecordingConfig struct {
	Language                string `json:"language"`
	Industry                string `json:"industry"`
	UserID                  string `json:"user_id"`
	MeetingTitle            string `json:"meeting_title"`
	CustomPromptDescription string `json:"custom_prompt_description"`
}

// MeetingInput is the configuration for processing an uploaded meeting
// recording. It extends RecordingConfig with Slack notification options.
type MeetingInput struct {
	Language                string `json:"language"`
	NotifySlack             bool   `json:"notify_slack"`
	Channel                 string `json:"channel"`
	Industry                string `json:"industry"`
	UserID                  string `json:"user_id"`
	MeetingTitle            string `json:"meeting_title"`
	CustomPromptDescription string `json:"custom_prompt_description"`
}

// Feedback is a user rating for a processed meeting.
type Feedback struct {
	MeetingID string `json:"meeting_id"`
	Rating    int    `json:"rating"`
	Comments  string `json:"comments"`
}
