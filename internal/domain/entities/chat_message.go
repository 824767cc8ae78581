package entities

// Chat message types as they appear in the log.
const (
	MessageTypeStatus  = "status"
	MessageTypeMessage = "message"
)

// ChatMessage is one entry of the per-session chat log. The log is strictly
// append-only in receipt order.
type ChatMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	MeetingID string `json:"meeting_id,omitempty"`
	// ClientID carries the client-generated id of a locally authored message
	// so a later server echo of the same message can be deduplicated.
	ClientID string `json:"client_id,omitempty"`
}
