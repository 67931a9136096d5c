package cmd

import (
	"fmt"
	"strings"

	"github.com/bianoble/buildctl/internal/engine"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about buildctl configuration and generators",
	Long: `Displays the buildctl version, the config chain, project metadata, build and
output directories, the selected CMake generator, and known generator aliases
(built-in and custom).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hr, err := loadConfigHierarchical()
		if err != nil {
			return err
		}
		eng, err := newBuildEngine(hr.Config)
		if err != nil {
			return err
		}

		result := engine.Info(version, resolvedConfigPath(), eng)
		for _, l := range hr.Layers {
			result.ConfigChain = append(result.ConfigChain, engine.ConfigLayerStatus{
				Level:  string(l.Level),
				Path:   l.Path,
				Loaded: l.Loaded,
			})
		}

		fmt.Printf("buildctl %s\n", result.Version)

		if len(result.ConfigChain) > 1 {
			fmt.Println("  config chain:")
			for _, layer := range result.ConfigChain {
				status := "not found"
				if layer.Loaded {
					status = "loaded"
				}
				fmt.Printf("    %-10s %s (%s)\n", layer.Level+":", layer.Path, status)
			}
		} else {
			fmt.Printf("  config:        %s\n", result.ConfigPath)
		}
		if hr.Defaulted {
			fmt.Println("                 (no config file, using defaults)")
		}

		fmt.Printf("  project:       %s v%s\n", result.Project.Name, result.Project.Version)
		if result.Project.Author != "" {
			fmt.Printf("  author:        %s\n", result.Project.Author)
		}
		fmt.Printf("  build types:   %s\n", strings.Join(result.BuildTypes, ", "))
		fmt.Printf("  build dir:     %s\n", result.BuildDir)
		fmt.Printf("  output dir:    %s (%s)\n", result.OutputDir, humanSize(result.OutputSize))
		multi := ""
		if result.MultiConfig {
			multi = " (multi-config)"
		}
		fmt.Printf("  generator:     %s%s\n", result.Generator, multi)

		if result.PublishTarget != "" {
			fmt.Printf("  publish:       %s\n", result.PublishTarget)
		}
		fmt.Printf("  providers:     %s\n", strings.Join(result.Providers, ", "))

		if result.Installer.Name != "" {
			fmt.Println("\nInstaller:")
			fmt.Printf("  name:          %s\n", result.Installer.Name)
			if result.Installer.Vendor != "" {
				fmt.Printf("  vendor:        %s\n", result.Installer.Vendor)
			}
			if result.Installer.License != "" {
				fmt.Printf("  license:       %s\n", result.Installer.License)
			}
			if result.Installer.Icon != "" {
				fmt.Printf("  icon:          %s\n", result.Installer.Icon)
			}
		}

		if len(result.Generators) > 0 {
			fmt.Println("\nGenerator aliases:")
			for _, g := range result.Generators {
				custom := ""
				if g.IsCustom {
					custom = " (custom)"
				}
				fmt.Printf("  %-15s → %s%s\n", g.Alias, g.Generator, custom)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
