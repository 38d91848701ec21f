// Package maven runs the backend build over the merged descriptor. It
// prefers the project's own Maven wrapper and falls back to a system mvn.
package maven

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
)

// buildArgs packages the backend; the merged descriptor's copy-frontend
// execution runs as part of this build.
var buildArgs = []string{"-B", "package"}

// buildTool picks the Maven executable for projectDir: the bundled wrapper
// when present, otherwise mvn from PATH. The wrapper path is absolutized
// because the command's working directory is not used for lookup.
func buildTool(projectDir string) (string, error) {
	wrapper := filepath.Join(projectDir, "mvnw")
	if info, err := os.Stat(wrapper); err == nil && !info.IsDir() {
		return filepath.Abs(wrapper)
	}
	return toolrun.LookPath("mvn")
}

// Build packages the backend project. A non-zero exit surfaces as
// *toolrun.ToolError carrying the captured build output.
func Build(ctx context.Context, runner *toolrun.Runner, projectDir string) error {
	tool, err := buildTool(projectDir)
	if err != nil {
		return err
	}
	if _, err := runner.Run(ctx, projectDir, tool, buildArgs...); err != nil {
		return fmt.Errorf("backend build: %w", err)
	}
	return nil
}
