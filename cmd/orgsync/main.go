// Command orgsync two-way syncs TODO tasks between a BeOrg inbox file
// and a Journelly file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgtools/orgsync/internal/config"
	"github.com/orgtools/orgsync/internal/task"
	"github.com/orgtools/orgsync/internal/ui"
)

var version = "0.3.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "orgsync",
	Short: "Two-way task sync between BeOrg and Journelly org files",
	Long: `orgsync reconciles TODO tasks between a BeOrg inbox file and a
Journelly file:

  - Incomplete tasks present in only one file are copied to the other
  - Tasks completed in either file are removed from both
  - Tasks are matched by exact text; earlier timestamps win on conflict
  - Non-task content is preserved byte for byte

File paths come from positional arguments, a .orgsync.yaml config file,
or ORGSYNC_* environment variables.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .orgsync.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "narrate per-task decisions")
}

// loadSettings resolves config file, environment, and any flags the
// invoked command defines.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}

	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	for key, name := range map[string]string{
		"beorg_file":       "beorg-file",
		"journelly_file":   "journelly-file",
		"allow_missing":    "allow-missing",
		"opaque_placement": "opaque-placement",
		"report":           "report",
		"log_file":         "log-file",
		"debounce":         "debounce",
	} {
		if f := cmd.Flags().Lookup(name); f != nil {
			v.BindPFlag(key, f)
		}
	}

	return config.FromViper(v)
}

// resolvePaths applies positional path arguments over the configured
// paths and checks both are present.
func resolvePaths(settings *config.Settings, args []string) error {
	if len(args) > 0 {
		settings.BeOrgFile = args[0]
	}
	if len(args) > 1 {
		settings.JournellyFile = args[1]
	}
	if settings.BeOrgFile == "" || settings.JournellyFile == "" {
		return fmt.Errorf("both file paths are required (arguments, config file, or ORGSYNC_BEORG_FILE/ORGSYNC_JOURNELLY_FILE)")
	}
	return nil
}

// reportWarnings prints recoverable problems to stderr: the full list in
// verbose mode, a summary count otherwise.
func reportWarnings(warnings []task.Warning, verbose bool) {
	if len(warnings) == 0 {
		return
	}
	if verbose {
		fmt.Fprintln(os.Stderr, "\nWarnings encountered during parsing:")
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "- %s\n", w)
		}
	}
	fmt.Fprintf(os.Stderr, "%s %d warning(s)\n", ui.RenderWarn("⚠"), len(warnings))
}
