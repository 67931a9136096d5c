package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bianoble/buildctl/internal/config"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "buildctl",
	Short: "Configure, build and inspect CMake projects",
	Long: `buildctl drives CMake through configure and build, then discovers the
executables and libraries the build produced through the CMake file API.
It records them in a build manifest that can be verified against disk and
published to an S3-compatible object store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			color.Disable()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildctl %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
		fmt.Printf("  fileapi: codemodel v2\n")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "file", "f", config.FileName, "path to config file (default: found by walking up to buildctl.yaml or the top CMakeLists.txt)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. An interrupt cancels the running CMake
// or test process.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.Danger.Sprintf("❌ %v", err))
		return err
	}
	return nil
}
