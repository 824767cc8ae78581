package chat

// SendRequest represents an outbound chat message
type SendRequest struct {
	Message string `json:"message" validate:"required"`
}

// SelectRequest points the chat at a meeting from the roster
type SelectRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}
