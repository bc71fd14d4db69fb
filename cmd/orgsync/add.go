package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/orgtools/orgsync/internal/format"
	"github.com/orgtools/orgsync/internal/task"
	"github.com/orgtools/orgsync/internal/ui"
)

var addAt string

var addCmd = &cobra.Command{
	Use:   "add <task text>",
	Short: "Add an incomplete task to the BeOrg inbox",
	Long: `Add a new incomplete task to the BeOrg inbox file. The next sync
pass propagates it into the Journelly file.

The creation time defaults to now and accepts natural language:

  orgsync add "Buy milk"
  orgsync add --at "tomorrow 9am" "Call mom"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadSettings(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		path := settings.BeOrgFile
		if f := cmd.Flags().Lookup("file"); f != nil && f.Changed {
			path = f.Value.String()
		}
		if path == "" {
			fmt.Fprintf(os.Stderr, "Error: no BeOrg file configured (use --file or beorg_file in config)\n")
			os.Exit(1)
		}

		content := strings.Join(args, " ")

		ts := time.Now()
		if addAt != "" {
			w := when.New(nil)
			w.Add(en.All...)
			w.Add(common.All...)
			r, err := w.Parse(addAt, time.Now())
			if err != nil || r == nil {
				fmt.Fprintf(os.Stderr, "Error: could not understand time %q\n", addAt)
				os.Exit(1)
			}
			ts = r.Time
		}

		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", path, err)
			os.Exit(1)
		}

		beorg := format.BeOrg()
		doc, _ := beorg.Parse(string(data))
		for _, t := range doc.Tasks() {
			if t.Content == content {
				fmt.Fprintf(os.Stderr, "Error: task %q already exists in %s\n", content, path)
				os.Exit(1)
			}
		}

		doc.Entries = append(doc.Entries, task.TaskEntry(task.Task{
			Content:   content,
			Timestamp: ts,
			Origin:    task.OriginBeOrg,
		}))

		if err := os.WriteFile(path, []byte(beorg.Render(doc.Entries)), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("%s Added %q at %s\n", ui.RenderPass("✓"), content, task.FormatStamp(ts))
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "creation time, natural language (default now)")
	addCmd.Flags().String("file", "", "BeOrg file to add to (overrides config)")
	rootCmd.AddCommand(addCmd)
}
