package cmd

import (
	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var (
	configureConfiguration string
	configureGenerator     string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the file API query and run the CMake configure step",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}

		result, err := eng.Configure(commandContext(cmd), engine.BuildOptions{
			Configuration: configureConfiguration,
			Generator:     configureGenerator,
		})
		if err != nil {
			return err
		}

		info("Configured %s (%s, %s)", result.BuildDir, result.Generator, result.Configuration)
		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureConfiguration, "config", engine.DefaultConfiguration, "build configuration (Debug, Release, ...)")
	configureCmd.Flags().StringVar(&configureGenerator, "generator", "", "CMake generator name or alias")
	rootCmd.AddCommand(configureCmd)
}
