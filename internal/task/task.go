// Package task defines the canonical in-memory representation of a synced
// task, the entry stream parsed from a document, and the org timestamp codec.
//
// A document is an ordered sequence of entries. Each entry is either a
// recognized Task or an opaque group of raw lines that the parser must
// carry through untouched. The synchronizer only ever rewrites the Task
// entries; opaque entries round-trip byte-identical.
package task

import (
	"fmt"
	"time"
)

// Origin identifies which document a task was read from.
// It is only meaningful before synchronization; after merging, the same
// resolved record is emitted into both documents.
type Origin int

const (
	// OriginBeOrg marks tasks read from the BeOrg inbox file.
	OriginBeOrg Origin = iota

	// OriginJournelly marks tasks read from the Journelly file.
	OriginJournelly
)

// String returns the document name used in diagnostics.
func (o Origin) String() string {
	switch o {
	case OriginBeOrg:
		return "beorg"
	case OriginJournelly:
		return "journelly"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Task represents a single TODO item parsed from either document.
type Task struct {
	// Content is the task text. It is the matching key between the two
	// documents and is compared by exact equality, whitespace and case
	// included.
	Content string

	// Timestamp is the task's creation moment.
	Timestamp time.Time

	// Completed reports whether the source notation marked the task done.
	Completed bool

	// Origin is the document the task was read from.
	Origin Origin
}

// Entry is one element of a parsed document: either a recognized task or
// an opaque group of raw lines preserved verbatim.
//
// Exactly one of Task or Opaque is set. Opaque holds the group's original
// lines without trailing newlines; the serializer re-joins them unchanged.
type Entry struct {
	Task   *Task
	Opaque []string
}

// TaskEntry wraps a task as a document entry.
func TaskEntry(t Task) Entry {
	return Entry{Task: &t}
}

// OpaqueEntry wraps raw lines as a pass-through entry.
func OpaqueEntry(lines []string) Entry {
	return Entry{Opaque: lines}
}

// IsTask reports whether the entry carries a recognized task.
func (e Entry) IsTask() bool {
	return e.Task != nil
}

// Document is the ordered entry sequence parsed from one file.
type Document struct {
	Origin  Origin
	Entries []Entry
}

// Tasks returns the recognized tasks in document order.
func (d Document) Tasks() []Task {
	var tasks []Task
	for _, e := range d.Entries {
		if e.IsTask() {
			tasks = append(tasks, *e.Task)
		}
	}
	return tasks
}

// Opaques returns the opaque entries in document order.
func (d Document) Opaques() []Entry {
	var opaque []Entry
	for _, e := range d.Entries {
		if !e.IsTask() {
			opaque = append(opaque, e)
		}
	}
	return opaque
}

// Warning records a recoverable parse or merge problem. Malformed entries
// are demoted to opaque pass-through and reported here instead of failing
// the run.
type Warning struct {
	// Source is the document the problem was found in.
	Source Origin

	// Line is the 1-based line number of the offending group's heading.
	// Zero when the problem is not tied to a single line.
	Line int

	// Message is a human-readable description including the offending text.
	Message string
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", w.Source, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Source, w.Message)
}
