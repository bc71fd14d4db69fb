package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgtools/orgsync/internal/format"
	"github.com/orgtools/orgsync/internal/task"
	"github.com/orgtools/orgsync/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [beorg-file] [journelly-file]",
	Short: "Parse both files and report problems without writing",
	Long: `Parse both files and report malformed entries without modifying
anything. Exits non-zero when a file cannot be read.`,
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

		var warnings []task.Warning
		for _, in := range []struct {
			f    format.Format
			path string
		}{
			{format.BeOrg(), settings.BeOrgFile},
			{format.Journelly(), settings.JournellyFile},
		} {
			data, err := os.ReadFile(in.path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", in.path, err)
				os.Exit(1)
			}
			doc, warns := in.f.Parse(string(data))
			warnings = append(warnings, warns...)
			fmt.Printf("%s %s: %d tasks, %d other entries\n",
				ui.RenderAccent("•"), in.path, len(doc.Tasks()), len(doc.Opaques()))
		}

		if len(warnings) == 0 {
			fmt.Printf("%s No problems found\n", ui.RenderPass("✓"))
			return
		}
		for _, w := range warnings {
			fmt.Printf("%s %s\n", ui.RenderWarn("⚠"), w)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
