package cmd

import (
	"fmt"
	"runtime"

	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var (
	buildConfiguration string
	buildGenerator     string
	buildClean         bool
	buildTest          bool
	buildStage         bool
	buildPublish       bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure and build the project, then list its artifacts",
	Long: `Writes the CMake file API query, runs the configure and build steps, and
lists the executables and libraries the build produced. The artifacts are
recorded with their SHA256 in <build_dir>/buildctl-manifest.yaml.

With --clean, removes the build and output directories and exits without
building. With --test, runs the executable matching the configuration
afterwards. With --stage, copies the artifacts to
<output_dir>/<configuration>/. With --publish, uploads the artifacts to the configured store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		info("🚀 Building %s v%s", cfg.Project.Name, cfg.Project.Version)
		info("   Configuration: %s", buildConfiguration)
		info("   Platform: %s", runtime.GOOS)
		info("")

		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}

		if buildClean {
			return runClean(eng)
		}

		result, err := eng.Build(commandContext(cmd), engine.BuildOptions{
			Configuration: buildConfiguration,
			Generator:     buildGenerator,
		})
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		detail("generator: %s", result.Generator)
		detail("reply index: %s", result.IndexPath)

		if err := printArtifacts(result.Artifacts); err != nil {
			return err
		}
		detail("manifest: %s", result.ManifestPath)

		if buildTest {
			info("🧪 Running tests...")
			tr, err := eng.RunTest(commandContext(cmd), result.Artifacts, result.Configuration)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
			if tr.Executable == nil {
				warn("⚠️  No executable found to test")
			}
		}

		if buildStage {
			if err := runStage(eng); err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
		}

		if buildPublish {
			if err := runPublish(cmd, eng); err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
		}

		success("\n✅ Build completed successfully!")
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildConfiguration, "config", engine.DefaultConfiguration, "build configuration (Debug, Release, ...)")
	buildCmd.Flags().StringVar(&buildGenerator, "generator", "", "CMake generator name or alias (default: config, then platform default)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "remove build and output directories and exit")
	buildCmd.Flags().BoolVar(&buildTest, "test", false, "run the built executable after building")
	buildCmd.Flags().BoolVar(&buildStage, "stage", false, "copy artifacts to the output directory after building")
	buildCmd.Flags().BoolVar(&buildPublish, "publish", false, "upload artifacts after building")
	rootCmd.AddCommand(buildCmd)
}
