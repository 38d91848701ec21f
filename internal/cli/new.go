package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bootstitch-labs/bootstitch/internal/blueprint"
	"github.com/bootstitch-labs/bootstitch/internal/config"
	"github.com/bootstitch-labs/bootstitch/internal/initializr"
	"github.com/bootstitch-labs/bootstitch/internal/params"
	"github.com/bootstitch-labs/bootstitch/internal/pipeline"
	"github.com/bootstitch-labs/bootstitch/internal/toolrun"
	"github.com/spf13/cobra"
)

var (
	newGroupID      string
	newBootVersion  string
	newJavaVersion  string
	newPackaging    string
	newTemplate     string
	newBlueprint    string
	newOutputDir    string
	newYes          bool
	newSkipBackend  bool
)

func init() {
	newCmd.Flags().StringVar(&newGroupID, "group-id", "", "Backend group id (default from config)")
	newCmd.Flags().StringVar(&newBootVersion, "boot-version", "", "Spring Boot version (default from config)")
	newCmd.Flags().StringVar(&newJavaVersion, "java-version", "", "Java version (default from config)")
	newCmd.Flags().StringVar(&newPackaging, "packaging", "", "Backend packaging: jar or war (default from config)")
	newCmd.Flags().StringVar(&newTemplate, "frontend-template", "", "Vite template for the frontend (default from config)")
	newCmd.Flags().StringVar(&newBlueprint, "blueprint", "", "Read parameters from a blueprint YAML file")
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Workspace directory (default: ./<artifact-id>)")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Accept defaults without prompting")
	newCmd.Flags().BoolVar(&newSkipBackend, "skip-backend-build", false, "Stop after merging the descriptor; do not run the backend build")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <artifact-id>",
	Short: "Generate a full-stack project",
	Long: `Generate a full-stack project: fetch a Spring Boot backend skeleton,
scaffold and build a frontend, and merge the backend build descriptor so
the packaged backend embeds the frontend's compiled assets.

Examples:
  bootstitch new shop --group-id com.acme --packaging war
  bootstitch new shop --blueprint shop.yaml --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveParams(args)
		if err != nil {
			return err
		}

		rootDir := newOutputDir
		if rootDir == "" {
			rootDir = filepath.Join(".", p.ArtifactID)
		}

		client := initializr.New(config.Get(config.KeyInitializrURL))
		warnUnsupportedBootVersion(cmd, client, p)

		st := &pipeline.State{
			Params:   p,
			RootDir:  rootDir,
			Client:   client,
			Runner:   &toolrun.Runner{},
			Progress: cmd.ErrOrStderr(),
		}

		if err := pipeline.New(st, newSkipBackend).Run(cmd.Context()); err != nil {
			var stageErr *pipeline.StageError
			if errors.As(err, &stageErr) {
				return fmt.Errorf("generation aborted: %w", err)
			}
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "\nCreated %s at %s/\n", p.ArtifactID, rootDir)
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s/   backend (merged descriptor)\n", p.BackendName())
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s/  frontend\n", p.FrontendName())
		return nil
	},
}

// resolveParams assembles the generation parameters from config defaults,
// a blueprint file, flags, and (when possible) interactive prompting, in
// increasing order of precedence.
func resolveParams(args []string) (*params.Params, error) {
	seed := params.Params{
		GroupID:          config.Get(config.KeyGroupID),
		BootVersion:      config.Get(config.KeyBootVersion),
		JavaVersion:      config.Get(config.KeyJavaVersion),
		Packaging:        config.Get(config.KeyPackaging),
		FrontendTemplate: config.Get(config.KeyFrontendTemplate),
	}
	if len(args) == 1 {
		seed.ArtifactID = args[0]
	}

	if newBlueprint != "" {
		p, err := blueprint.Load(newBlueprint, seed)
		if err != nil {
			return nil, err
		}
		applyFlags(p)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil
	}

	if seed.ArtifactID == "" {
		return nil, fmt.Errorf("artifact id is required (pass it as an argument or via --blueprint)")
	}

	applyFlags(&seed)

	if !newYes && isTerminal(os.Stdin) {
		return params.Prompt(os.Stdin, os.Stderr, seed)
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// applyFlags overlays explicitly set flag values onto p.
func applyFlags(p *params.Params) {
	if newGroupID != "" {
		p.GroupID = newGroupID
	}
	if newBootVersion != "" {
		p.BootVersion = newBootVersion
	}
	if newJavaVersion != "" {
		p.JavaVersion = newJavaVersion
	}
	if newPackaging != "" {
		p.Packaging = newPackaging
	}
	if newTemplate != "" {
		p.FrontendTemplate = newTemplate
	}
}

// warnUnsupportedBootVersion asks the skeleton service which Boot versions
// it can generate. The check is advisory: an unreachable metadata endpoint
// is ignored and the starter request stays the authority.
func warnUnsupportedBootVersion(cmd *cobra.Command, client *initializr.Client, p *params.Params) {
	versions, err := client.SupportedBootVersions(cmd.Context())
	if err != nil || len(versions) == 0 {
		return
	}
	if !slices.Contains(versions, p.BootVersion) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: Spring Boot %s is not listed by the skeleton service (supported: %v)\n",
			p.BootVersion, versions)
	}
}
