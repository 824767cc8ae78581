package extract

import "github.com/claritynotes/clarity-client/internal/domain/entities"

// SelectSource picks the single raw text field that feeds extraction, in
// fixed precedence: the explicit actions field, else content, else a summary
// that arrived as plain text, else the summary object's text. Exactly one
// source is consulted per call; sources are never merged.
func SelectSource(result *entities.InsightResult) (string, bool) {
	if result == nil {
		return "", false
	}
	switch {
	case result.Actions != "":
		return result.Actions, true
	case result.Content != "":
		return result.Content, true
	case result.Summary.Text != "":
		// Plain-string summary and the object form's summary field are the
		// last two precedence levels; both resolve to the same text.
		return result.Summary.Text, true
	}
	return "", false
}

// FromResult extracts action items from whichever field of the result payload
// takes precedence.
func FromResult(result *entities.InsightResult) []entities.ActionItem {
	raw, ok := SelectSource(result)
	if !ok {
		return make([]entities.ActionItem, 0)
	}
	return Extract(raw)
}
