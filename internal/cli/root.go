package cli

import (
	"fmt"
	"os"

	"github.com/bootstitch-labs/bootstitch/internal/branding"
	"github.com/bootstitch-labs/bootstitch/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates full-stack projects: it fetches a Spring Boot
backend skeleton, scaffolds a frontend, and merges the backend build
descriptor so one build produces a single deployable artifact with the
frontend's compiled assets embedded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// isTerminal checks if the given file is a terminal, used to decide
// whether interactive prompting is possible.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
