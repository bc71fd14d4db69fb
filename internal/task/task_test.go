package task

import (
	"testing"
	"time"
)

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid stamp",
			input: "2025-08-31 Sun 11:32",
			want:  time.Date(2025, 8, 31, 11, 32, 0, 0, time.Local),
		},
		{
			name:  "midnight",
			input: "2024-01-01 Mon 00:00",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "month out of range",
			input:   "2024-13-01 Mon 10:00",
			wantErr: true,
		},
		{
			name:    "unknown weekday token",
			input:   "2024-01-01 Xyz 10:00",
			wantErr: true,
		},
		{
			name:    "missing time",
			input:   "2024-01-01 Mon",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStamp(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStamp(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseStamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatStamp_RoundTrip(t *testing.T) {
	const in = "2025-09-02 Tue 09:00"
	ts, err := ParseStamp(in)
	if err != nil {
		t.Fatalf("ParseStamp failed: %v", err)
	}
	if got := FormatStamp(ts); got != in {
		t.Errorf("FormatStamp(ParseStamp(%q)) = %q", in, got)
	}
}

func TestDocument_Partition(t *testing.T) {
	doc := Document{
		Origin: OriginBeOrg,
		Entries: []Entry{
			OpaqueEntry([]string{"* MEETING notes here", "agenda"}),
			TaskEntry(Task{Content: "Buy milk", Timestamp: time.Now(), Origin: OriginBeOrg}),
			OpaqueEntry([]string{"stray line"}),
			TaskEntry(Task{Content: "Call mom", Timestamp: time.Now(), Completed: true, Origin: OriginBeOrg}),
		},
	}

	tasks := doc.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("Tasks() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].Content != "Buy milk" || tasks[1].Content != "Call mom" {
		t.Errorf("Tasks() order wrong: %q, %q", tasks[0].Content, tasks[1].Content)
	}

	opaque := doc.Opaques()
	if len(opaque) != 2 {
		t.Fatalf("Opaques() returned %d entries, want 2", len(opaque))
	}
	if opaque[0].Opaque[0] != "* MEETING notes here" {
		t.Errorf("Opaques() order wrong: %q", opaque[0].Opaque[0])
	}
}

func TestWarning_String(t *testing.T) {
	w := Warning{Source: OriginJournelly, Line: 7, Message: "malformed timestamp"}
	if got, want := w.String(), "journelly:7: malformed timestamp"; got != want {
		t.Errorf("Warning.String() = %q, want %q", got, want)
	}

	w = Warning{Source: OriginBeOrg, Message: "duplicate task"}
	if got, want := w.String(), "beorg: duplicate task"; got != want {
		t.Errorf("Warning.String() = %q, want %q", got, want)
	}
}
