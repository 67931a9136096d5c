package cmd

import (
	"fmt"

	"github.com/bianoble/buildctl/internal/engine"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify build artifacts against the build manifest",
	Long: `Hashes every artifact recorded in the manifest of the last build and
reports artifacts that changed or disappeared since. Does not build.
Exit 0 if all artifacts match; exit non-zero otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}

		m, path, err := loadManifest(eng)
		if err != nil {
			return err
		}
		detail("manifest: %s (%s, %s)", path, m.Configuration, m.Generator)
		detail("build id: %s", m.BuildID)

		result, err := (&engine.VerifyEngine{}).Verify(m)
		if err != nil {
			return err
		}

		for _, p := range result.Unchanged {
			info("  %s %s", color.Success.Sprint("✓"), p)
		}
		for _, d := range result.Changed {
			info("  %s %s  %s → %s", color.Danger.Sprint("✗"), d.Path, short(d.Expected), short(d.Actual))
		}
		for _, p := range result.Missing {
			info("  %s %s  missing", color.Danger.Sprint("✗"), p)
		}

		if !result.Clean() {
			return fmt.Errorf("%d artifact(s) differ from the manifest", len(result.Changed)+len(result.Missing))
		}

		success("\nAll artifacts match the manifest.")
		return nil
	},
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
