package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/orgtools/orgsync/internal/task"
)

// Journelly headings embed the timestamp, with the task itself as a
// checkbox item on the immediately following line:
//
//	* [2025-08-31 Sun 11:32] @ -
//	- [ ] Buy milk
//
// Headings without an embedded timestamp, or entries whose second line is
// not a checkbox item, pass through untouched.
const (
	journellyOpenPrefix = "- [ ] "
	journellyDonePrefix = "- [X] "
	journellyTrailer    = "@ -"
)

// journellyHeading matches a heading with an embedded bracketed timestamp.
// The trailer after the brackets is free-form and is normalized on render.
var journellyHeading = regexp.MustCompile(`^\* \[(\d{4}-\d{2}-\d{2} \w{3} \d{2}:\d{2})\]`)

type journellyFormat struct{}

// Journelly returns the Journelly notation.
func Journelly() Format {
	return journellyFormat{}
}

func (journellyFormat) Name() string        { return "journelly" }
func (journellyFormat) Origin() task.Origin { return task.OriginJournelly }

// Parse implements Format.
func (f journellyFormat) Parse(raw string) (task.Document, []task.Warning) {
	doc := task.Document{Origin: f.Origin()}
	var warnings []task.Warning

	for _, g := range splitGroups(raw) {
		heading := g.heading()

		m := journellyHeading.FindStringSubmatch(heading)
		if m == nil {
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		ts, err := task.ParseStamp(m[1])
		if err != nil {
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line,
				Message: fmt.Sprintf("malformed timestamp %q", m[1]),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		next, ok := g.second()
		if !ok {
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line,
				Message: fmt.Sprintf("entry has no task line after timestamp: %q", heading),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		var completed bool
		switch {
		case strings.HasPrefix(next, journellyOpenPrefix):
			completed = false
		case strings.HasPrefix(next, journellyDonePrefix):
			completed = true
		default:
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line + 1,
				Message: fmt.Sprintf("entry has no checkbox line after timestamp: %q", heading),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		doc.Entries = append(doc.Entries, task.TaskEntry(task.Task{
			Content:   next[len(journellyOpenPrefix):],
			Timestamp: ts,
			Completed: completed,
			Origin:    f.Origin(),
		}))
	}

	return doc, warnings
}

// Render implements Format. The heading trailer is always emitted as
// "@ -", matching what Journelly itself writes for location-less entries.
func (journellyFormat) Render(entries []task.Entry) string {
	var lines []string
	for _, e := range entries {
		if !e.IsTask() {
			lines = append(lines, e.Opaque...)
			continue
		}
		checkbox := journellyOpenPrefix
		if e.Task.Completed {
			checkbox = journellyDonePrefix
		}
		lines = append(lines, fmt.Sprintf("* [%s] %s", task.FormatStamp(e.Task.Timestamp), journellyTrailer))
		lines = append(lines, checkbox+e.Task.Content)
	}
	return renderLines(lines)
}
