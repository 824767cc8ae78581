package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

func TestExtract_TwoWellFormedQuadruples(t *testing.T) {
	raw := "Description: Fix bug Assignee: Sam Deadline: Friday Priority: High " +
		"Description: Write docs Assignee: Jo Deadline: Monday Priority: Low"

	items := Extract(raw)
	require.Len(t, items, 2)
	assert.Equal(t, entities.ActionItem{Description: "Fix bug", Assignee: "Sam", Deadline: "Friday", Priority: "High"}, items[0])
	assert.Equal(t, entities.ActionItem{Description: "Write docs", Assignee: "Jo", Deadline: "Monday", Priority: "Low"}, items[1])
}

func TestExtract_EmptyInput(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   \n\n  "))
}

func TestExtract_MarkdownNoise(t *testing.T) {
	raw := "**Description**: Ship the *release*\n\n**Assignee** - Priya\r\n" +
		"**Deadline**:\nnext Tuesday\n**Priority**: **Medium**"

	items := Extract(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Ship the release", items[0].Description)
	assert.Equal(t, "Priya", items[0].Assignee)
	assert.Equal(t, "next Tuesday", items[0].Deadline)
	assert.Equal(t, "Medium", items[0].Priority)
}

func TestExtract_CaseInsensitiveLabels(t *testing.T) {
	raw := "description fix login ASSIGNEE: kim deadline - tomorrow PRIORITY high"

	items := Extract(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "fix login", items[0].Description)
	assert.Equal(t, "kim", items[0].Assignee)
	assert.Equal(t, "tomorrow", items[0].Deadline)
	assert.Equal(t, "high", items[0].Priority)
}

func TestExtract_IncompleteQuadrupleDropped(t *testing.T) {
	// Missing the Priority label entirely: nothing is emitted, not a partial
	// item.
	raw := "Description: Fix bug Assignee: Sam Deadline: Friday"
	assert.Empty(t, Extract(raw))

	// A complete record followed by a trailing fragment keeps only the
	// complete one.
	raw = "Description: Fix bug Assignee: Sam Deadline: Friday Priority: High " +
		"Description: dangling Assignee: nobody"
	items := Extract(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Fix bug", items[0].Description)
}

func TestExtract_TrailingPriorityRunsToEnd(t *testing.T) {
	raw := "Description: Audit logs Assignee: Lee Deadline: Q3 Priority: Low, after launch"

	items := Extract(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Low, after launch", items[0].Priority)
}

func TestExtract_EmptyFieldValues(t *testing.T) {
	raw := "Description: Assignee: Deadline: Priority:"

	items := Extract(raw)
	require.Len(t, items, 1)
	assert.Equal(t, entities.ActionItem{}, items[0])
}

func TestExtract_Deterministic(t *testing.T) {
	raw := "Description: a Assignee: b Deadline: c Priority: d"
	first := Extract(raw)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(raw))
	}
}

func TestSelectSource_Precedence(t *testing.T) {
	actions := "Description: a Assignee: b Deadline: c Priority: d"

	tests := []struct {
		name    string
		payload string
		want    string
		wantOK  bool
	}{
		{
			name:    "actions wins",
			payload: `{"actions":"A","content":"C","summary":"S","transcript":""}`,
			want:    "A",
			wantOK:  true,
		},
		{
			name:    "content when no actions",
			payload: `{"content":"C","summary":"S","transcript":""}`,
			want:    "C",
			wantOK:  true,
		},
		{
			name:    "plain summary string",
			payload: `{"summary":"S","transcript":""}`,
			want:    "S",
			wantOK:  true,
		},
		{
			name:    "nested summary object",
			payload: `{"summary":{"summary":"SS","sentiment":"Positive"},"transcript":""}`,
			want:    "SS",
			wantOK:  true,
		},
		{
			name:    "nothing usable",
			payload: `{"summary":{"summary":""},"transcript":""}`,
			want:    "",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result entities.InsightResult
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &result))
			got, ok := SelectSource(&result)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	// End to end through FromResult
	var result entities.InsightResult
	require.NoError(t, json.Unmarshal([]byte(`{"actions":"`+actions+`","transcript":""}`), &result))
	items := FromResult(&result)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Description)
}

func TestSelectSource_NilResult(t *testing.T) {
	_, ok := SelectSource(nil)
	assert.False(t, ok)
	assert.Empty(t, FromResult(nil))
}
