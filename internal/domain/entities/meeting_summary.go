package entities

// MeetingSummary is one entry of the meeting roster. Created server-side when
// a meeting is processed or a real-time session finishes; the client only ever
// appends entries it learns about, it never mutates or deletes them.
type MeetingSummary struct {
	MeetingID    string `json:"meeting_id"`
	MeetingTitle string `json:"meeting_title"`
	Timestamp    string `json:"timestamp"`
	Industry     string `json:"industry,omitempty"`
}
