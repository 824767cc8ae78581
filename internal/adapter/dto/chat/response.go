package chat

import "github.com/claritynotes/clarity-client/internal/domain/entities"

// LogResponse is the chat log with the current connection state
type LogResponse struct {
	Connected       bool                   `json:"connected"`
	SelectedMeeting string                 `json:"selected_meeting"`
	Messages        []entities.ChatMessage `json:"messages"`
}
