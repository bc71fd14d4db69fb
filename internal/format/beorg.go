package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/orgtools/orgsync/internal/task"
)

// BeOrg headings carry the status keyword first, with the creation
// timestamp on the immediately following line:
//
//	* TODO Buy milk
//	[2025-08-31 Sun 11:32]
//
// Headings with any other leading keyword are not tasks and pass through
// untouched, trailing lines included.
const (
	beorgTodoPrefix = "* TODO "
	beorgDonePrefix = "* DONE "
)

// beorgStampLine matches a bracketed timestamp at the start of the line
// following a BeOrg heading.
var beorgStampLine = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \w{3} \d{2}:\d{2})\]`)

type beorgFormat struct{}

// BeOrg returns the BeOrg inbox notation.
func BeOrg() Format {
	return beorgFormat{}
}

func (beorgFormat) Name() string        { return "beorg" }
func (beorgFormat) Origin() task.Origin { return task.OriginBeOrg }

// Parse implements Format.
func (f beorgFormat) Parse(raw string) (task.Document, []task.Warning) {
	doc := task.Document{Origin: f.Origin()}
	var warnings []task.Warning

	for _, g := range splitGroups(raw) {
		heading := g.heading()

		var completed bool
		switch {
		case strings.HasPrefix(heading, beorgTodoPrefix):
			completed = false
		case strings.HasPrefix(heading, beorgDonePrefix):
			completed = true
		default:
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		content := heading[len(beorgTodoPrefix):]

		next, ok := g.second()
		if !ok {
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line,
				Message: fmt.Sprintf("task at end of file has no timestamp line: %q", heading),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		m := beorgStampLine.FindStringSubmatch(next)
		if m == nil {
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line,
				Message: fmt.Sprintf("task timestamp missing or wrong format: %q", heading),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		ts, err := task.ParseStamp(m[1])
		if err != nil {
			warnings = append(warnings, task.Warning{
				Source:  f.Origin(),
				Line:    g.line + 1,
				Message: fmt.Sprintf("malformed timestamp %q", m[1]),
			})
			doc.Entries = append(doc.Entries, task.OpaqueEntry(g.lines))
			continue
		}

		doc.Entries = append(doc.Entries, task.TaskEntry(task.Task{
			Content:   content,
			Timestamp: ts,
			Completed: completed,
			Origin:    f.Origin(),
		}))
	}

	return doc, warnings
}

// Render implements Format. Tasks are emitted in canonical two-line form;
// opaque groups are emitted exactly as parsed.
func (beorgFormat) Render(entries []task.Entry) string {
	var lines []string
	for _, e := range entries {
		if !e.IsTask() {
			lines = append(lines, e.Opaque...)
			continue
		}
		status := "TODO"
		if e.Task.Completed {
			status = "DONE"
		}
		lines = append(lines, fmt.Sprintf("* %s %s", status, e.Task.Content))
		lines = append(lines, fmt.Sprintf("[%s]", task.FormatStamp(e.Task.Timestamp)))
	}
	return renderLines(lines)
}
