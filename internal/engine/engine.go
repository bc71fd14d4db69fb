// Package engine orchestrates one synchronization run: read both files,
// parse, merge, render, and write both outputs back.
//
// The engine performs all computation before touching either file. Both
// rendered outputs are held in memory and written through temporary files
// in the target directories, so a failure mid-run leaves both documents
// in their original state.
package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/orgtools/orgsync/internal/format"
	"github.com/orgtools/orgsync/internal/merge"
	"github.com/orgtools/orgsync/internal/task"
)

// Config holds the parameters for one run.
type Config struct {
	// BeOrgPath is the BeOrg inbox file.
	BeOrgPath string

	// JournellyPath is the Journelly file.
	JournellyPath string

	// Verbose enables per-task narration through Logger.
	Verbose bool

	// AllowMissing treats a missing input file as empty instead of
	// failing. Off by default: a missing path is normally an I/O error.
	AllowMissing bool

	// Placement is where opaque groups land in each output.
	Placement merge.Placement

	// ReportPath, when set, receives the warning list as YAML.
	ReportPath string

	// Logger for narration. If nil, a default logger writing to stderr
	// is used.
	Logger *log.Logger
}

// Summary describes a completed run.
type Summary struct {
	// BeOrgTasks and JournellyTasks are the task counts written to each
	// file. After a successful run they are always equal.
	BeOrgTasks     int
	JournellyTasks int

	// Warnings collects every recoverable problem from parsing and
	// merging, in processing order.
	Warnings []task.Warning
}

// Run performs one synchronization pass.
//
// Both files are read in full before any parsing, and both outputs are
// rendered in full before any writing. Malformed entries never fail the
// run; they surface in Summary.Warnings. I/O failures do.
func Run(cfg Config) (*Summary, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[orgsync] ", log.LstdFlags)
	}

	rawA, err := readInput(cfg.BeOrgPath, cfg.AllowMissing)
	if err != nil {
		return nil, err
	}
	rawB, err := readInput(cfg.JournellyPath, cfg.AllowMissing)
	if err != nil {
		return nil, err
	}

	beorg := format.BeOrg()
	journelly := format.Journelly()

	docA, warnA := beorg.Parse(rawA)
	docB, warnB := journelly.Parse(rawB)

	if cfg.Verbose {
		logger.Printf("parsed %d tasks from %s", len(docA.Tasks()), cfg.BeOrgPath)
		logger.Printf("parsed %d tasks from %s", len(docB.Tasks()), cfg.JournellyPath)
	}

	opts := merge.Options{Placement: cfg.Placement}
	if cfg.Verbose {
		opts.Logger = logger
	}
	outA, outB, warnMerge := merge.SynchronizeWith(docA, docB, opts)

	summary := &Summary{
		BeOrgTasks:     len(outA.Tasks()),
		JournellyTasks: len(outB.Tasks()),
	}
	summary.Warnings = append(summary.Warnings, warnA...)
	summary.Warnings = append(summary.Warnings, warnB...)
	summary.Warnings = append(summary.Warnings, warnMerge...)

	renderedA := beorg.Render(outA.Entries)
	renderedB := journelly.Render(outB.Entries)

	if err := writePair(cfg.BeOrgPath, renderedA, cfg.JournellyPath, renderedB); err != nil {
		return nil, err
	}

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, summary.Warnings); err != nil {
			return nil, err
		}
	}

	if cfg.Verbose {
		logger.Printf("synchronization complete: %d tasks in each file", summary.BeOrgTasks)
	}
	return summary, nil
}

// readInput reads one document in full.
func readInput(path string, allowMissing bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writePair replaces both files, or neither. Each output is staged as a
// temporary file in the target directory and renamed into place only
// after both stages succeed.
func writePair(pathA, contentA, pathB, contentB string) error {
	tmpA, err := stage(pathA, contentA)
	if err != nil {
		return err
	}
	tmpB, err := stage(pathB, contentB)
	if err != nil {
		os.Remove(tmpA)
		return err
	}

	if err := os.Rename(tmpA, pathA); err != nil {
		os.Remove(tmpA)
		os.Remove(tmpB)
		return fmt.Errorf("failed to replace %s: %w", pathA, err)
	}
	if err := os.Rename(tmpB, pathB); err != nil {
		os.Remove(tmpB)
		return fmt.Errorf("failed to replace %s: %w", pathB, err)
	}
	return nil
}

// stage writes content to a temporary file next to path and returns the
// temporary file's name.
func stage(path, content string) (string, error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return f.Name(), nil
}

// reportEntry is the YAML shape of one warning in the report file.
type reportEntry struct {
	Document string `yaml:"document"`
	Line     int    `yaml:"line,omitempty"`
	Message  string `yaml:"message"`
}

// writeReport serializes the warning list as YAML.
func writeReport(path string, warnings []task.Warning) error {
	entries := make([]reportEntry, 0, len(warnings))
	for _, w := range warnings {
		entries = append(entries, reportEntry{
			Document: w.Source.String(),
			Line:     w.Line,
			Message:  w.Message,
		})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal warning report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write warning report: %w", err)
	}
	return nil
}
