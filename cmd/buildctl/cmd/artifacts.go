package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bianoble/buildctl/internal/engine"
	"github.com/bianoble/buildctl/internal/fileapi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	artifactKinds  []string
	artifactFormat string
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List the artifacts of an existing build",
	Long: `Reads the CMake file API reply of the last configure and lists the
executables and libraries it describes. Nothing is built.

Use --kind to filter (executable, static, shared; repeatable) and --format
to print json or yaml instead of the grouped listing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kinds []fileapi.TargetKind
		for _, k := range artifactKinds {
			kind, err := engine.ParseKind(k)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(cfg)
		if err != nil {
			return err
		}

		all, err := eng.Artifacts()
		if err != nil {
			return err
		}
		return writeArtifacts(os.Stdout, engine.FilterByKind(all, kinds...), artifactFormat)
	},
}

func writeArtifacts(w io.Writer, artifacts []fileapi.BuildArtifact, format string) error {
	switch format {
	case "", "text":
		if quiet {
			return nil
		}
		return fileapi.PrintArtifacts(w, artifacts)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(artifacts); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format '%s' (want text, json, or yaml)", format)
}

func init() {
	artifactsCmd.Flags().StringSliceVar(&artifactKinds, "kind", nil, "only list artifacts of this kind")
	artifactsCmd.Flags().StringVarP(&artifactFormat, "format", "o", "text", "output format: text, json, yaml")
	rootCmd.AddCommand(artifactsCmd)
}
