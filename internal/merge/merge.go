// Package merge implements the two-way reconciliation between the parsed
// BeOrg and Journelly documents.
//
// The synchronizer is a pure function over the two entry sequences:
//
//	Documents (parsed)
//	     ├── beorg entries      → tasks + opaque groups
//	     └── journelly entries  → tasks + opaque groups
//	                                   ↓
//	                              Synchronize
//	                                   ↓
//	                        Outcome per document
//	                        (resolved tasks + untouched opaque groups)
//
// Resolution rules:
//   - A task completed in either document is dropped from both.
//   - An incomplete task present in only one document is copied into both.
//   - An incomplete task present in both keeps the earlier timestamp.
//   - Tasks are matched by exact content equality.
//
// The pass is symmetric and idempotent: running it again on its own
// output changes nothing.
package merge

import (
	"fmt"
	"log"
	"slices"

	"github.com/orgtools/orgsync/internal/task"
)

// Placement controls where opaque groups land relative to the sorted
// task block in each output document.
type Placement int

const (
	// PlaceAppend emits opaque groups after the sorted task block,
	// keeping their original relative order. This is the default.
	PlaceAppend Placement = iota

	// PlacePrepend emits opaque groups before the sorted task block.
	PlacePrepend
)

// Options configures a synchronization pass.
type Options struct {
	// Placement is where opaque groups go in each output. Zero value
	// is PlaceAppend.
	Placement Placement

	// Logger, when set, narrates per-task decisions. Nil is silent.
	Logger *log.Logger
}

// Outcome is the per-document result of a pass: the final ordered entry
// sequence to serialize. Task entries come sorted by timestamp, most
// recent first; opaque entries are carried through untouched.
type Outcome struct {
	Entries []task.Entry
}

// Tasks returns the resolved tasks in output order.
func (o Outcome) Tasks() []task.Task {
	var tasks []task.Task
	for _, e := range o.Entries {
		if e.IsTask() {
			tasks = append(tasks, *e.Task)
		}
	}
	return tasks
}

// Synchronize reconciles the two parsed documents with default options.
func Synchronize(beorg, journelly task.Document) (Outcome, Outcome, []task.Warning) {
	return SynchronizeWith(beorg, journelly, Options{})
}

// SynchronizeWith reconciles the two parsed documents.
//
// Both outcomes always contain the same resolved task set; they differ
// only in the opaque groups carried from their own source document.
// Duplicate content within a single document is a malformed-input edge
// case: the last occurrence wins and a warning is recorded.
func SynchronizeWith(beorg, journelly task.Document, opts Options) (Outcome, Outcome, []task.Warning) {
	var warnings []task.Warning

	byContentA, orderA, warnA := indexTasks(beorg)
	byContentB, orderB, warnB := indexTasks(journelly)
	warnings = append(warnings, warnA...)
	warnings = append(warnings, warnB...)

	// Distinct contents in first-seen order across both documents. The
	// order seeds the stable sort's tie-break, so it must not depend on
	// map iteration.
	contents := orderA
	for _, c := range orderB {
		if _, ok := byContentA[c]; !ok {
			contents = append(contents, c)
		}
	}

	var resolved []task.Task
	for _, content := range contents {
		a, inA := byContentA[content]
		b, inB := byContentB[content]

		switch {
		case inA && inB:
			if a.Completed || b.Completed {
				logf(opts.Logger, "removing completed task from both files: %s", content)
				continue
			}
			logf(opts.Logger, "task exists in both files: %s", content)
			keep := a
			if b.Timestamp.Before(a.Timestamp) {
				keep = b
			}
			resolved = append(resolved, task.Task{
				Content:   content,
				Timestamp: keep.Timestamp,
				Completed: false,
				Origin:    keep.Origin,
			})

		case inA:
			if a.Completed {
				logf(opts.Logger, "removing completed task from %s: %s", a.Origin, content)
				continue
			}
			logf(opts.Logger, "adding task to %s: %s", task.OriginJournelly, content)
			resolved = append(resolved, a)

		case inB:
			if b.Completed {
				logf(opts.Logger, "removing completed task from %s: %s", b.Origin, content)
				continue
			}
			logf(opts.Logger, "adding task to %s: %s", task.OriginBeOrg, content)
			resolved = append(resolved, b)
		}
	}

	// Most recent first; ties keep first-seen order.
	slices.SortStableFunc(resolved, func(x, y task.Task) int {
		return y.Timestamp.Compare(x.Timestamp)
	})

	outA := assemble(resolved, beorg.Opaques(), opts.Placement)
	outB := assemble(resolved, journelly.Opaques(), opts.Placement)
	return outA, outB, warnings
}

// indexTasks maps a document's tasks by content, last occurrence winning,
// and returns contents in first-seen order.
func indexTasks(doc task.Document) (map[string]task.Task, []string, []task.Warning) {
	byContent := make(map[string]task.Task)
	var order []string
	var warnings []task.Warning

	for _, t := range doc.Tasks() {
		if _, seen := byContent[t.Content]; seen {
			warnings = append(warnings, task.Warning{
				Source:  doc.Origin,
				Message: fmt.Sprintf("duplicate task %q; keeping the last occurrence", t.Content),
			})
		} else {
			order = append(order, t.Content)
		}
		byContent[t.Content] = t
	}
	return byContent, order, warnings
}

// assemble combines the resolved task block with one document's opaque
// groups according to the placement policy.
func assemble(resolved []task.Task, opaque []task.Entry, placement Placement) Outcome {
	entries := make([]task.Entry, 0, len(resolved)+len(opaque))

	if placement == PlacePrepend {
		entries = append(entries, opaque...)
	}
	for _, t := range resolved {
		entries = append(entries, task.TaskEntry(t))
	}
	if placement != PlacePrepend {
		entries = append(entries, opaque...)
	}
	return Outcome{Entries: entries}
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
