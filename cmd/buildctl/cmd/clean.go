package cmd

import (
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build and output directories",
	Long: `Removes the configured build and output directories. Directories that
resolve outside the project root are refused.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}
		return runClean(eng)
	},
}

func runClean(eng *engine.BuildEngine) error {
	info("🧹 Cleaning build directory...")
	result, err := eng.Clean()
	if err != nil {
		return err
	}
	for _, dir := range result.Removed {
		detail("removed %s", dir)
	}
	for _, dir := range result.Absent {
		detail("%s does not exist", dir)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
