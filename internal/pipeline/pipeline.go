package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bootstitch-labs/bootstitch/internal/descriptor"
	"github.com/bootstitch-labs/bootstitch/internal/frontend"
	"github.com/bootstitch-labs/bootstitch/internal/initializr"
	"github.com/bootstitch-labs/bootstitch/internal/maven"
	"github.com/bootstitch-labs/bootstitch/internal/params"
	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
	"github.com/bootstitch-labs/bootstitch/internal/workspace"
)

// ErrTargetExists reports a workspace root that already contains files.
// Generation never overwrites an existing project.
var ErrTargetExists = errors.New("target directory already exists and is not empty")

// StageError wraps a failure with the name of the pipeline stage it
// occurred in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Stage is one step of the generation chain.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *State) error
}

// State is the shared context threaded through the stages. The build
// descriptor at BackendDir/pom.xml is the only mutable artifact, and
// the merge stage is its only writer.
type State struct {
	Params      *params.Params
	RootDir     string // workspace root, usually ./<artifact-id>
	BackendDir  string
	FrontendDir string

	Client   *initializr.Client
	Runner   *toolrun.Runner
	Progress io.Writer
}

// Pipeline runs an ordered list of stages over a State.
type Pipeline struct {
	state  *State
	stages []Stage
}

// New assembles the standard generation pipeline. When skipBackendBuild
// is set the final packaging stage is omitted, leaving a merged but
// unbuilt backend.
func New(st *State, skipBackendBuild bool) *Pipeline {
	if st.BackendDir == "" {
		st.BackendDir = filepath.Join(st.RootDir, st.Params.BackendName())
	}
	if st.FrontendDir == "" {
		st.FrontendDir = filepath.Join(st.RootDir, st.Params.FrontendName())
	}
	if st.Progress == nil {
		st.Progress = os.Stderr
	}

	stages := []Stage{
		fetchBackendStage{},
		scaffoldFrontendStage{},
		buildFrontendStage{},
		mergeDescriptorStage{},
		writeWorkspaceStage{},
	}
	if !skipBackendBuild {
		stages = append(stages, buildBackendStage{})
	}

	return &Pipeline{state: st, stages: stages}
}

// Run executes the stages in order, stopping at the first failure. The
// target-directory conflict check happens before any stage runs.
func (p *Pipeline) Run(ctx context.Context) error {
	if entries, err := os.ReadDir(p.state.RootDir); err == nil && len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrTargetExists, p.state.RootDir)
	}

	for _, stage := range p.stages {
		fmt.Fprintf(p.state.Progress, "==> %s\n", stage.Name())
		if err := stage.Run(ctx, p.state); err != nil {
			return &StageError{Stage: stage.Name(), Err: err}
		}
	}
	return nil
}

// ─── Stages ────────────────────────────────────────────────────────

type fetchBackendStage struct{}

func (fetchBackendStage) Name() string { return "fetch backend skeleton" }

func (fetchBackendStage) Run(ctx context.Context, st *State) error {
	return st.Client.FetchSkeleton(ctx, st.Params, st.BackendDir)
}

type scaffoldFrontendStage struct{}

func (scaffoldFrontendStage) Name() string { return "scaffold frontend" }

func (scaffoldFrontendStage) Run(ctx context.Context, st *State) error {
	return frontend.Scaffold(ctx, st.Runner, st.RootDir, st.Params.FrontendName(), st.Params.FrontendTemplate)
}

type buildFrontendStage struct{}

func (buildFrontendStage) Name() string { return "build frontend" }

func (buildFrontendStage) Run(ctx context.Context, st *State) error {
	return frontend.Build(ctx, st.Runner, st.FrontendDir)
}

type mergeDescriptorStage struct{}

func (mergeDescriptorStage) Name() string { return "merge build descriptor" }

func (mergeDescriptorStage) Run(ctx context.Context, st *State) error {
	pomPath := filepath.Join(st.BackendDir, "pom.xml")
	doc, err := os.ReadFile(pomPath)
	if err != nil {
		return fmt.Errorf("reading build descriptor: %w", err)
	}

	merged, err := descriptor.Merge(doc, descriptor.Config{
		ArtifactID:  st.Params.ArtifactID,
		Packaging:   st.Params.Packaging,
		JavaVersion: st.Params.JavaVersion,
		AssetDir:    st.Params.AssetDir(),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(pomPath, merged, 0644); err != nil {
		return fmt.Errorf("writing merged descriptor: %w", err)
	}
	return nil
}

type writeWorkspaceStage struct{}

func (writeWorkspaceStage) Name() string { return "write workspace files" }

func (writeWorkspaceStage) Run(ctx context.Context, st *State) error {
	p := st.Params
	data := workspace.NewData(p.ArtifactID, p.GroupID, p.BootVersion, p.JavaVersion, p.Packaging)
	_, err := workspace.Write(st.RootDir, data)
	return err
}

type buildBackendStage struct{}

func (buildBackendStage) Name() string { return "build backend" }

func (buildBackendStage) Run(ctx context.Context, st *State) error {
	return maven.Build(ctx, st.Runner, st.BackendDir)
}
