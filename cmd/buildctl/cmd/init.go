package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default buildctl.yaml scaffold.
const initTemplate = `# buildctl configuration
version: 1

project:
  name: MyApp
  version: 1.0.0
  # author: Your Name

build_types: [Debug, Release]

cmake:
  source_dir: .
  build_dir: build
  output_dir: dist
  # generator: ninja          # name or alias; default per platform
  # parallel: true            # pass --parallel to cmake --build (not on windows)
  # binary: /usr/local/bin/cmake
  # defines:
  #   MYAPP_WITH_TESTS: "ON"

# Built-in generator aliases: make, unix, ninja, ninja-multi, vs2022, vs2019,
# xcode, mingw
# generators:
#   - name: fast
#     value: Ninja Multi-Config

# installer:
#   name: MyApp Setup
#   vendor: Example Corp
#   license: LICENSE.txt

# Credentials come from BUILDCTL_PUBLISH_ACCESS_KEY and
# BUILDCTL_PUBLISH_SECRET_KEY (environment or .env).
# publish:
#   provider: minio
#   endpoint: minio.example.com:9000
#   bucket: builds
#   prefix: myapp
#   secure: true
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter buildctl.yaml configuration",
	Long: `Creates a buildctl.yaml file with the default project settings and
commented-out examples for generators, installer metadata and publishing.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Set the project name and version")
		info("  2. Run 'buildctl build' to configure and build")
		info("  3. Run 'buildctl artifacts' to list what was built")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
