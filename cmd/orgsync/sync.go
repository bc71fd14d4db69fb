package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgtools/orgsync/internal/engine"
	"github.com/orgtools/orgsync/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync [beorg-file] [journelly-file]",
	Short: "Synchronize tasks between the two files",
	Long: `Synchronize TODO tasks between a BeOrg inbox file and a Journelly file.

This performs one full pass:
  1. Reads both files in their entirety
  2. Parses each into tasks and pass-through content
  3. Merges: propagates missing tasks, removes completed ones,
     keeps the earlier timestamp on conflicts
  4. Writes both files back, replacing prior contents

Nothing is written unless both outputs could be computed and staged.
Malformed entries are preserved untouched and reported as warnings.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := resolvePaths(settings, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		placement, err := settings.Placement()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		summary, err := engine.Run(engine.Config{
			BeOrgPath:     settings.BeOrgFile,
			JournellyPath: settings.JournellyFile,
			Verbose:       settings.Verbose,
			AllowMissing:  settings.AllowMissing,
			Placement:     placement,
			ReportPath:    settings.Report,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		reportWarnings(summary.Warnings, settings.Verbose)
		fmt.Printf("%s Synchronization complete: %d tasks in each file\n",
			ui.RenderPass("✓"), summary.BeOrgTasks)
	},
}

func init() {
	syncCmd.Flags().Bool("allow-missing", false, "treat a missing input file as empty")
	syncCmd.Flags().String("opaque-placement", "append", "where non-task content goes: append or prepend")
	syncCmd.Flags().String("report", "", "write warnings to this YAML file")
	rootCmd.AddCommand(syncCmd)
}
