package frontend

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
)

func TestDistDir(t *testing.T) {
	got := DistDir(filepath.Join("work", "shop-frontend"))
	want := filepath.Join("work", "shop-frontend", "dist")
	if got != want {
		t.Errorf("DistDir = %q, want %q", got, want)
	}
}

func TestScaffoldArgs(t *testing.T) {
	got := strings.Join(scaffoldArgs("shop-frontend", "vue"), " ")
	want := "create vite@latest shop-frontend -- --template vue"
	if got != want {
		t.Errorf("scaffoldArgs = %q, want %q", got, want)
	}
}

// fakeNpm installs a shell script named npm on PATH that records each
// invocation to a log file, one line per call.
func fakeNpm(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	dir := t.TempDir()
	log := filepath.Join(dir, "npm.log")
	script := "#!/bin/sh\necho \"$@\" >> " + log + "\n"
	if err := os.WriteFile(filepath.Join(dir, "npm"), []byte(script), 0755); err != nil {
		t.Fatalf("writing fake npm: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return log
}

func TestScaffoldInvokesViteCreate(t *testing.T) {
	log := fakeNpm(t)
	runner := &toolrun.Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	if err := Scaffold(context.Background(), runner, t.TempDir(), "shop-frontend", "vue"); err != nil {
		t.Fatalf("Scaffold() error: %v", err)
	}

	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("reading invocation log: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "create vite@latest shop-frontend -- --template vue" {
		t.Errorf("npm invocation = %q", got)
	}
}

func TestBuildRunsInstallThenBuild(t *testing.T) {
	log := fakeNpm(t)
	runner := &toolrun.Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	if err := Build(context.Background(), runner, t.TempDir()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("reading invocation log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != "install" || lines[1] != "run build" {
		t.Errorf("npm invocations = %v, want [install, run build]", lines)
	}
}
