package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/rapidreporter/internal/export"
	"github.com/fakeyudi/rapidreporter/internal/report"
	"github.com/fakeyudi/rapidreporter/internal/session"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <session.json>",
	Short: "Render a saved session file to Markdown, or export it with --output",
	Long: `Render reads a session captured as JSON (the console's data model,
serialized) and prints its Markdown report to stdout. With --output it
instead produces the full export folder, assets included. Mostly useful
for debugging report output without sitting through a session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", args[0])
			}
			return err
		}

		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("parse session file: %w", err)
		}

		if renderOutput == "" {
			r := report.Render(&sess)
			fmt.Fprint(cmd.OutOrStdout(), r.Markdown)
			return nil
		}

		result, err := export.Session(cmd.Context(), &sess, renderOutput, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", result.MarkdownPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Export destination root instead of printing to stdout")
	rootCmd.AddCommand(renderCmd)
}
