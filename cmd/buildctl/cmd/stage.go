package cmd

import (
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Copy the artifacts of the last build to the output directory",
	Long: `Copies every artifact in the build manifest to
<output_dir>/<configuration>/. Each copy is checked against the SHA256
recorded at build time, so artifacts modified since the build are refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}
		return runStage(eng)
	},
}

func runStage(eng *engine.BuildEngine) error {
	m, _, err := loadManifest(eng)
	if err != nil {
		return err
	}

	info("📁 Staging artifacts...")
	result, err := eng.Stage(m)
	if err != nil {
		return err
	}
	for _, p := range result.Staged {
		info("  → %s", p)
	}
	for _, p := range result.Unchanged {
		detail("%s is up to date", p)
	}
	for _, p := range result.Skipped {
		detail("skipped %s (not built)", p)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(stageCmd)
}
