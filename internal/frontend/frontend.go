// Package frontend scaffolds and builds the frontend half of a generated
// project using the Vite starter CLI through npm. The compiled assets land
// in the dist directory that the merged build descriptor references.
package frontend

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
)

// npmTool is the package manager used for scaffolding and building.
const npmTool = "npm"

// DistDir returns the compiled-assets directory for a frontend project.
func DistDir(projectDir string) string {
	return filepath.Join(projectDir, "dist")
}

// scaffoldArgs builds the npm invocation that scaffolds a Vite project
// non-interactively into a child directory named name.
func scaffoldArgs(name, template string) []string {
	return []string{"create", "vite@latest", name, "--", "--template", template}
}

// Scaffold generates a frontend project at parentDir/name from the given
// Vite template. npm must be on PATH.
func Scaffold(ctx context.Context, runner *toolrun.Runner, parentDir, name, template string) error {
	if _, err := toolrun.LookPath(npmTool); err != nil {
		return err
	}
	if _, err := runner.Run(ctx, parentDir, npmTool, scaffoldArgs(name, template)...); err != nil {
		return fmt.Errorf("scaffolding frontend: %w", err)
	}
	return nil
}

// Build installs dependencies and runs the production build in projectDir.
func Build(ctx context.Context, runner *toolrun.Runner, projectDir string) error {
	if _, err := runner.Run(ctx, projectDir, npmTool, "install"); err != nil {
		return fmt.Errorf("installing frontend dependencies: %w", err)
	}
	if _, err := runner.Run(ctx, projectDir, npmTool, "run", "build"); err != nil {
		return fmt.Errorf("building frontend: %w", err)
	}
	return nil
}
