package cli

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/bootstitch-labs/bootstitch/internal/config"
	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
	"github.com/spf13/cobra"
)

// Minimum tool versions the generator is tested against.
var toolChecks = []struct {
	tool       string
	versionArg string
	minVersion string
}{
	{"npm", "--version", "9.0.0"},
	{"mvn", "--version", "3.6.0"},
}

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required external tools are available",
	Long: `Verify that the external tools the generator drives (npm for the
frontend, Maven for the backend) are installed and recent enough, and
show the configured skeleton service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failures := 0

		for _, check := range toolChecks {
			if _, err := toolrun.LookPath(check.tool); err != nil {
				fmt.Fprintf(out, "✗ %s: not found on PATH\n", check.tool)
				failures++
				continue
			}

			line, err := toolrun.Version(cmd.Context(), check.tool, check.versionArg)
			if err != nil {
				fmt.Fprintf(out, "✗ %s: could not determine version: %v\n", check.tool, err)
				failures++
				continue
			}

			raw := versionPattern.FindString(line)
			current, err := semver.NewVersion(raw)
			if err != nil {
				fmt.Fprintf(out, "? %s: unrecognized version output %q\n", check.tool, line)
				continue
			}

			min := semver.MustParse(check.minVersion)
			if current.LessThan(min) {
				fmt.Fprintf(out, "✗ %s: version %s is older than required %s\n", check.tool, current, min)
				failures++
				continue
			}

			fmt.Fprintf(out, "✓ %s %s\n", check.tool, current)
		}

		fmt.Fprintf(out, "  skeleton service: %s\n", config.Get(config.KeyInitializrURL))

		if failures > 0 {
			return fmt.Errorf("%d tool check(s) failed", failures)
		}
		return nil
	},
}
