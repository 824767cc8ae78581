package presenter

import (
	"github.com/claritynotes/clarity-client/internal/adapter/dto/meeting"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
	"github.com/claritynotes/clarity-client/internal/usecase/extract"
)

// BuildInsightView flattens a backend result payload into its render-ready
// form. Zero extracted action items is not an error: the view just carries an
// empty list and the renderer shows its "no action items identified" state.
func BuildInsightView(result *entities.InsightResult) meeting.InsightView {
	view := meeting.InsightView{
		Summary:     "No summary available",
		Transcript:  "No transcript available",
		ActionItems: make([]entities.ActionItem, 0),
	}
	if result == nil {
		return view
	}

	if result.Summary.Text != "" {
		view.Summary = result.Summary.Text
	}
	view.Sentiment = result.Summary.Sentiment
	if result.Transcript.Text != "" {
		view.Transcript = result.Transcript.Text
	}
	view.ActionItems = extract.FromResult(result)
	return view
}
