package entities

// ActionItem is one structured task extracted from AI-generated meeting notes.
// All fields are free text; a field the source text never filled in is an
// empty string, never omitted.
type ActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
}
