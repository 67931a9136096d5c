package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the artifacts of the last build",
	Long: `Uploads every artifact in the build manifest, and the manifest itself, to
the object store configured under 'publish'. Objects are written to
<prefix>/<project>/<version>/<configuration>/<file>.

Credentials are read from BUILDCTL_PUBLISH_ACCESS_KEY and
BUILDCTL_PUBLISH_SECRET_KEY (a .env file next to the config is loaded).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}
		return runPublish(cmd, eng)
	},
}

func runPublish(cmd *cobra.Command, eng *engine.BuildEngine) error {
	m, path, err := loadManifest(eng)
	if err != nil {
		return err
	}

	provider, err := engine.OpenProvider(eng.Config.Publish)
	if err != nil {
		return err
	}

	info("📤 Publishing to %s/%s...", eng.Config.Publish.Endpoint, eng.Config.Publish.Bucket)
	result, err := (&engine.PublishEngine{Provider: provider}).Publish(commandContext(cmd), m, path)
	if err != nil {
		return err
	}

	for _, u := range result.Uploaded {
		size := ""
		if fi, err := os.Stat(filepath.FromSlash(u.Path)); err == nil {
			size = " (" + humanSize(fi.Size()) + ")"
		}
		info("  ↑ %s%s", u.Object, size)
	}
	for _, p := range result.Skipped {
		detail("skipped %s (not on disk)", p)
	}
	for _, e := range result.Errors {
		errorf("%s: %s", e.Artifact, e.Err)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d upload(s) failed", len(result.Errors))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
