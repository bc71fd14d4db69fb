package format

import (
	"strings"
	"testing"

	"github.com/orgtools/orgsync/internal/task"
)

func TestJournelly_Parse(t *testing.T) {
	input := strings.Join([]string{
		"* [2025-09-02 Tue 09:00] @ -",
		"- [ ] Call mom",
		"* Some journal note",
		"just text",
		"* [2025-09-01 Mon 09:30] @ -",
		"- [X] Ship release",
	}, "\n") + "\n"

	doc, warnings := Journelly().Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	tasks := doc.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("parsed %d tasks, want 2", len(tasks))
	}
	if tasks[0].Content != "Call mom" || tasks[0].Completed {
		t.Errorf("task 0 = %+v", tasks[0])
	}
	if !tasks[0].Timestamp.Equal(stamp(t, "2025-09-02 Tue 09:00")) {
		t.Errorf("task 0 timestamp = %v", tasks[0].Timestamp)
	}
	if tasks[1].Content != "Ship release" || !tasks[1].Completed {
		t.Errorf("task 1 = %+v", tasks[1])
	}
	for i, tk := range tasks {
		if tk.Origin != task.OriginJournelly {
			t.Errorf("task %d origin = %v", i, tk.Origin)
		}
	}

	opaque := doc.Opaques()
	if len(opaque) != 1 {
		t.Fatalf("parsed %d opaque entries, want 1", len(opaque))
	}
	if got := strings.Join(opaque[0].Opaque, "\n"); got != "* Some journal note\njust text" {
		t.Errorf("opaque entry = %q", got)
	}
}

func TestJournelly_Parse_FreeFormTrailer(t *testing.T) {
	input := "* [2025-09-02 Tue 09:00] @ Home\n- [ ] Call mom\n"
	doc, warnings := Journelly().Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	tasks := doc.Tasks()
	if len(tasks) != 1 || tasks[0].Content != "Call mom" {
		t.Fatalf("trailer variant not parsed: %+v", tasks)
	}
}

func TestJournelly_Parse_LenientRecovery(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantWarning bool
		wantMessage string
	}{
		{
			name:        "heading without timestamp is opaque, no warning",
			input:       "* Some other header\n- [ ] Looks like a task\n",
			wantWarning: false,
		},
		{
			name:        "checkbox line missing at end of file",
			input:       "* [2025-09-02 Tue 09:00] @ -\n",
			wantWarning: true,
			wantMessage: "no task line",
		},
		{
			name:        "second line is not a checkbox",
			input:       "* [2025-09-02 Tue 09:00] @ -\nsome prose instead\n",
			wantWarning: true,
			wantMessage: "no checkbox line",
		},
		{
			name:        "unrecognized checkbox marker",
			input:       "* [2025-09-02 Tue 09:00] @ -\n- [?] Maybe done\n",
			wantWarning: true,
			wantMessage: "no checkbox line",
		},
		{
			name:        "timestamp shape matches but value is invalid",
			input:       "* [2024-13-01 Mon 10:00] @ -\n- [ ] Bad month\n",
			wantWarning: true,
			wantMessage: "malformed timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings := Journelly().Parse(tt.input)

			if tt.wantWarning {
				if len(warnings) != 1 {
					t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
				}
				if !strings.Contains(warnings[0].Message, tt.wantMessage) {
					t.Errorf("warning %q does not mention %q", warnings[0].Message, tt.wantMessage)
				}
			} else if len(warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", warnings)
			}

			if len(doc.Tasks()) != 0 {
				t.Error("malformed group was parsed as a task")
			}
			// The group must survive verbatim either way.
			if len(doc.Opaques()) != 1 {
				t.Fatalf("got %d opaque entries, want 1", len(doc.Opaques()))
			}
			want := strings.TrimSuffix(tt.input, "\n")
			if got := strings.Join(doc.Opaques()[0].Opaque, "\n"); got != want {
				t.Errorf("opaque content = %q, want %q", got, want)
			}
		})
	}
}

func TestJournelly_Render(t *testing.T) {
	entries := []task.Entry{
		task.TaskEntry(task.Task{Content: "Call mom", Timestamp: stamp(t, "2025-09-02 Tue 09:00")}),
		task.TaskEntry(task.Task{Content: "Ship release", Timestamp: stamp(t, "2025-09-01 Mon 09:30"), Completed: true}),
		task.OpaqueEntry([]string{"* Some journal note", "just text"}),
	}

	want := strings.Join([]string{
		"* [2025-09-02 Tue 09:00] @ -",
		"- [ ] Call mom",
		"* [2025-09-01 Mon 09:30] @ -",
		"- [X] Ship release",
		"* Some journal note",
		"just text",
	}, "\n") + "\n"

	if got := Journelly().Render(entries); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestJournelly_RoundTrip(t *testing.T) {
	input := strings.Join([]string{
		"* [2025-09-02 Tue 09:00] @ -",
		"- [ ] Call mom",
		"* Some journal note",
		"just text",
	}, "\n") + "\n"

	f := Journelly()
	doc, warnings := f.Parse(input)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if got := f.Render(doc.Entries); got != input {
		t.Errorf("round trip changed text:\nin:  %q\nout: %q", input, got)
	}
}
