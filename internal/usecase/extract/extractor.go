package extract

import (
	"regexp"
	"strings"

	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

// Extraction turns the free-form action-item text produced by the AI pipeline
// into typed rows. The upstream generator is inconsistent about line breaks,
// markdown emphasis and label punctuation, so the text is normalized before
// matching and matching itself is tolerant about separators.
//
// A record is the labeled quadruple Description, Assignee, Deadline, Priority
// in that exact order. Anything that does not complete the quadruple is
// dropped rather than emitted partially.

var (
	carriageRe  = regexp.MustCompile(`\r`)
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	newlineRe   = regexp.MustCompile(`\n`)
	spacesRe    = regexp.MustCompile(`\s+`)

	descriptionRe = labelRe("Description")
	assigneeRe    = labelRe("Assignee")
	deadlineRe    = labelRe("Deadline")
	priorityRe    = labelRe("Priority")
)

// labelRe matches a field label with an optional colon or dash separator,
// case-insensitively.
func labelRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + name + `\s*[:-]?\s*`)
}

// Extract parses raw action-item text into a list of action items. Empty
// input yields an empty list, never an error: extraction is a pure function
// with no failure mode of its own.
func Extract(raw string) []entities.ActionItem {
	items := make([]entities.ActionItem, 0)
	text := Normalize(raw)
	if text == "" {
		return items
	}

	cur := 0
	for {
		descEnd, _, ok := findLabel(descriptionRe, text, cur)
		if !ok {
			break
		}
		asgEnd, asgStart, ok := findLabel(assigneeRe, text, descEnd)
		if !ok {
			break
		}
		dlEnd, dlStart, ok := findLabel(deadlineRe, text, asgEnd)
		if !ok {
			break
		}
		prEnd, prStart, ok := findLabel(priorityRe, text, dlEnd)
		if !ok {
			break
		}

		// The priority value runs to the next Description label, or to end of
		// input for a trailing record.
		valueEnd := len(text)
		next := len(text)
		if _, nextStart, ok := findLabel(descriptionRe, text, prEnd); ok {
			valueEnd = nextStart
			next = nextStart
		}

		items = append(items, entities.ActionItem{
			Description: cleanField(text[descEnd:asgStart]),
			Assignee:    cleanField(text[asgEnd:dlStart]),
			Deadline:    cleanField(text[dlEnd:prStart]),
			Priority:    cleanField(text[prEnd:valueEnd]),
		})
		cur = next
	}

	return items
}

// Normalize flattens the raw markdown-ish text to a single line: carriage
// returns stripped, blank lines collapsed, newlines folded to spaces,
// whitespace runs squeezed, emphasis markers removed.
func Normalize(raw string) string {
	text := carriageRe.ReplaceAllString(raw, "")
	text = blankLineRe.ReplaceAllString(text, "\n")
	text = newlineRe.ReplaceAllString(text, " ")
	text = spacesRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "*", "")
	// Stripping emphasis can leave doubled spaces behind.
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// findLabel locates the first occurrence of a label at or after from and
// returns the value start (end of the label match) and the label start.
func findLabel(re *regexp.Regexp, text string, from int) (valueStart, labelStart int, ok bool) {
	loc := re.FindStringIndex(text[from:])
	if loc == nil {
		return 0, 0, false
	}
	return from + loc[1], from + loc[0], true
}

// cleanField strips leftover emphasis markers and surrounding whitespace from
// a captured field value.
func cleanField(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "*", ""))
}
