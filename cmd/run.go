package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/rapidreporter/internal/session"
	"github.com/fakeyudi/rapidreporter/internal/tui"
)

var (
	runTester   string
	runCharter  string
	runDuration int
	runOutput   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a timed session and open the note console",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("run needs an interactive terminal")
		}

		tester := runTester
		if tester == "" {
			tester = GetConfig().TesterName
		}

		sess, err := session.New(tester, runCharter, runDuration)
		if err != nil {
			return err
		}

		cfg := GetConfig()
		if runOutput != "" {
			cfg.OutputDir = runOutput
		}

		result, err := tui.Run(sess, cfg)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("Session discarded (no export).")
			return nil
		}
		fmt.Printf("Session exported. Report: %s\n", result.MarkdownPath)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runTester, "tester", "", "Tester name (defaults to config tester_name)")
	runCmd.Flags().StringVar(&runCharter, "charter", "", "Session charter (required, at least 3 characters)")
	runCmd.Flags().IntVar(&runDuration, "duration", 60, "Session length in minutes: 30, 60, 90, 120 or 0 for no limit")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Export destination root (defaults to config output_dir)")
	rootCmd.AddCommand(runCmd)
}
