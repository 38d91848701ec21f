package cli

import (
	"fmt"
	"os"

	"github.com/bootstitch-labs/bootstitch/internal/config"
	"github.com/bootstitch-labs/bootstitch/internal/descriptor"
	"github.com/spf13/cobra"
)

var (
	mergeArtifactID  string
	mergePackaging   string
	mergeJavaVersion string
	mergeAssetDir    string
)

func init() {
	mergeCmd.Flags().StringVar(&mergeArtifactID, "artifact-id", "", "Project name; the descriptor identifier becomes <artifact-id>-backend (required)")
	mergeCmd.Flags().StringVar(&mergePackaging, "packaging", "", "Packaging to set: jar or war (default from config)")
	mergeCmd.Flags().StringVar(&mergeJavaVersion, "java-version", "", "Java version property to set (default from config)")
	mergeCmd.Flags().StringVar(&mergeAssetDir, "asset-dir", "", "Compiled frontend asset directory, relative to the descriptor (required)")
	mergeCmd.MarkFlagRequired("artifact-id")
	mergeCmd.MarkFlagRequired("asset-dir")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <pom.xml>",
	Short: "Merge frontend embedding into an existing build descriptor",
	Long: `Apply the descriptor merge to an existing Maven build descriptor:
rename the artifactId, set packaging and the java.version property, and
upsert the copy-frontend build step. The merge is idempotent, so it is
safe to re-run on an already merged descriptor.

Example:
  bootstitch merge shop-backend/pom.xml --artifact-id shop --asset-dir ../shop-frontend/dist`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		packaging := mergePackaging
		if packaging == "" {
			packaging = config.Get(config.KeyPackaging)
		}
		javaVersion := mergeJavaVersion
		if javaVersion == "" {
			javaVersion = config.Get(config.KeyJavaVersion)
		}

		doc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading descriptor %s: %w", path, err)
		}

		merged, err := descriptor.Merge(doc, descriptor.Config{
			ArtifactID:  mergeArtifactID,
			Packaging:   packaging,
			JavaVersion: javaVersion,
			AssetDir:    mergeAssetDir,
		})
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, merged, 0644); err != nil {
			return fmt.Errorf("writing descriptor %s: %w", path, err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Merged %s (artifact %s-backend, %s packaging)\n", path, mergeArtifactID, packaging)
		return nil
	},
}
