// Package format implements the two document notations understood by
// orgsync: the BeOrg inbox format and the Journelly format.
//
// Both notations are line oriented. A document splits into groups at
// level-one org headings (lines starting "* "); each group is classified
// as a task or preserved verbatim as an opaque entry. Groups that look
// like tasks but carry an unparseable timestamp are demoted to opaque
// entries with a warning, never a fatal error.
package format

import (
	"fmt"
	"strings"

	"github.com/orgtools/orgsync/internal/task"
)

// Format parses one notation into a document and renders an entry
// sequence back into it.
//
// Render must exactly mirror Parse's line grammar: rendering a parsed
// document's entries reproduces the recognized tasks in canonical form
// and every opaque group byte-identical, so that a second sync pass
// leaves the file untouched.
type Format interface {
	// Name returns the notation's short name ("beorg" or "journelly").
	Name() string

	// Origin returns the document identity tagged onto parsed tasks
	// and warnings.
	Origin() task.Origin

	// Parse converts raw document text into an ordered entry sequence
	// plus any recoverable-parse warnings. It performs no I/O.
	Parse(raw string) (task.Document, []task.Warning)

	// Render converts an ordered entry sequence back into document text.
	// Output is newline-terminated when non-empty.
	Render(entries []task.Entry) string
}

// ByName returns the format registered under name.
func ByName(name string) (Format, error) {
	switch name {
	case "beorg":
		return BeOrg(), nil
	case "journelly":
		return Journelly(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want beorg or journelly)", name)
	}
}

// group is one heading-delimited slice of the document: the heading line
// plus every line up to the next heading. Lines before the first heading
// form a headingless preamble group.
type group struct {
	line  int      // 1-based line number of the first line
	lines []string // raw lines, no trailing newlines
}

// heading returns the group's first line with surrounding space trimmed.
func (g group) heading() string {
	if len(g.lines) == 0 {
		return ""
	}
	return strings.TrimSpace(g.lines[0])
}

// second returns the group's second line trimmed, and whether it exists.
func (g group) second() (string, bool) {
	if len(g.lines) < 2 {
		return "", false
	}
	return strings.TrimSpace(g.lines[1]), true
}

// splitGroups splits raw text into heading-delimited groups. The raw
// lines are kept unmodified so opaque groups can round-trip exactly;
// only classification looks at trimmed text.
func splitGroups(raw string) []group {
	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return nil
	}

	lines := strings.Split(raw, "\n")
	var groups []group
	var current *group

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "* ") {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &group{line: i + 1}
		} else if current == nil {
			// Preamble before the first heading.
			current = &group{line: i + 1}
		}
		current.lines = append(current.lines, line)
	}
	if current != nil {
		groups = append(groups, *current)
	}
	return groups
}

// renderLines joins rendered lines into final document text,
// newline-terminated when non-empty.
func renderLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
