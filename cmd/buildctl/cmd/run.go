package cmd

import (
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var runConfiguration string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the built executable of an existing build",
	Long: `Runs the executable that 'build --test' would run: the first executable
whose path contains the configuration name, otherwise the first executable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}

		artifacts, err := eng.Artifacts()
		if err != nil {
			return err
		}

		info("🧪 Running tests...")
		result, err := eng.RunTest(commandContext(cmd), artifacts, runConfiguration)
		if err != nil {
			return err
		}
		if result.Executable == nil {
			warn("⚠️  No executable found to test")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfiguration, "config", engine.DefaultConfiguration, "build configuration to prefer")
	rootCmd.AddCommand(runCmd)
}
