package entities

import "encoding/json"

// InsightResult is the result payload produced by the backend for a processed
// or real-time meeting. The backend is loose about its shape: summary may be a
// plain string or an object, transcript may be a plain string or a diarized
// object, and the action-item text may live under actions or content. The
// custom unmarshalers below absorb all observed shapes.
type InsightResult struct {
	Summary    SummaryPayload    `json:"summary"`
	Actions    string            `json:"actions,omitempty"`
	Content    string            `json:"content,omitempty"`
	Transcript TranscriptPayload `json:"transcript"`
}

// SummaryPayload is either a bare string or {"summary": ..., "sentiment": ...}.
type SummaryPayload struct {
	Text      string
	Sentiment string
	// Plain reports whether the backend sent a bare string. The distinction
	// matters for source precedence when extracting action items.
	Plain bool
}

func (s *SummaryPayload) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = SummaryPayload{Text: text, Plain: true}
		return nil
	}

	var obj struct {
		Summary   string `json:"summary"`
		Sentiment string `json:"sentiment"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = SummaryPayload{Text: obj.Summary, Sentiment: obj.Sentiment}
	return nil
}

func (s SummaryPayload) MarshalJSON() ([]byte, error) {
	if s.Plain {
		return json.Marshal(s.Text)
	}
	return json.Marshal(struct {
		Summary   string `json:"summary"`
		Sentiment string `json:"sentiment,omitempty"`
	}{Summary: s.Text, Sentiment: s.Sentiment})
}

// TranscriptPayload is either a bare string or {"diarized": ...}.
type TranscriptPayload struct {
	Text     string
	Diarized bool
}

func (t *TranscriptPayload) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*t = TranscriptPayload{Text: text}
		return nil
	}

	var obj struct {
		Diarized string `json:"diarized"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = TranscriptPayload{Text: obj.Diarized, Diarized: true}
	return nil
}

func (t TranscriptPayload) MarshalJSON() ([]byte, error) {
	if t.Diarized {
		return json.Marshal(struct {
			Diarized string `json:"diarized"`
		}{Diarized: t.Text})
	}
	return json.Marshal(t.Text)
}
