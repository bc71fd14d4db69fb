package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgtools/orgsync/internal/merge"
)

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".orgsync.yaml")
	content := `beorg_file: /home/me/inbox.org
journelly_file: /home/me/journelly.org
verbose: true
opaque_placement: prepend
debounce: 2s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	v, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}

	if s.BeOrgFile != "/home/me/inbox.org" {
		t.Errorf("BeOrgFile = %q", s.BeOrgFile)
	}
	if s.JournellyFile != "/home/me/journelly.org" {
		t.Errorf("JournellyFile = %q", s.JournellyFile)
	}
	if !s.Verbose {
		t.Error("Verbose = false, want true")
	}
	if s.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s", s.Debounce)
	}
	if p, err := s.Placement(); err != nil || p != merge.PlacePrepend {
		t.Errorf("Placement() = %v, %v", p, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	v, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}

	if s.OpaquePlacement != "append" {
		t.Errorf("OpaquePlacement default = %q, want append", s.OpaquePlacement)
	}
	if s.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce default = %v, want 500ms", s.Debounce)
	}
	if p, err := s.Placement(); err != nil || p != merge.PlaceAppend {
		t.Errorf("Placement() = %v, %v", p, err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ORGSYNC_BEORG_FILE", "/env/inbox.org")

	v, err := New("")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if s.BeOrgFile != "/env/inbox.org" {
		t.Errorf("BeOrgFile = %q, want /env/inbox.org", s.BeOrgFile)
	}
}

func TestLoad_MissingExplicitConfigFails(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("New with a missing explicit config file should fail")
	}
}

func TestSettings_PlacementInvalid(t *testing.T) {
	s := &Settings{OpaquePlacement: "interleave"}
	if _, err := s.Placement(); err == nil {
		t.Error("Placement() should reject unknown policies")
	}
}
