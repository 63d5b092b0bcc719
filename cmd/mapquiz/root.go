package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/phanxgames/mapquiz"
	"github.com/spf13/cobra"
)

// Version is the current version of mapquiz.
const Version = "0.3.0"

// options holds the persistent flags shared by every subcommand.
type options struct {
	debug      bool
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "mapquiz",
		Short: "mapquiz - find the region on an interactive map",
		Long: `mapquiz shows a map and asks you to find its regions one by one.

Drag to pan, use the mouse wheel to zoom around the cursor, and click a
region to answer the prompt.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML config file (default: built-in settings)")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newInitConfigCommand())
	return cmd
}

// loadConfig returns the config named by --config, or the defaults. The
// --debug flag always turns debug mode on.
func (o *options) loadConfig() (mapquiz.Config, error) {
	cfg := mapquiz.DefaultConfig()
	if o.configPath != "" {
		var err error
		cfg, err = mapquiz.LoadConfig(o.configPath)
		if err != nil {
			return mapquiz.Config{}, err
		}
		log.Printf("loaded config %s", o.configPath)
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newRunCommand(opts *options) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "run <map.yaml>",
		Short: "Play the quiz for a map",
		Long: `Open a window and play the quiz for a map file.

Keys:
  R        restart the quiz
  V        review the regions you missed
  L        toggle region labels
  Home, 0  reset the view

Examples:
  mapquiz run testdata/world.yaml
  mapquiz run testdata/world.yaml --config quiz.toml --script play.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			m, err := mapquiz.LoadMap(args[0])
			if err != nil {
				return err
			}
			log.Printf("loaded map %q with %d regions", m.Name, len(m.Regions))

			scene, err := mapquiz.NewScene(m, cfg)
			if err != nil {
				return fmt.Errorf("failed to create scene: %w", err)
			}
			defer scene.Close()
			if scriptPath != "" {
				runner, err := mapquiz.LoadTestScriptFile(scriptPath)
				if err != nil {
					return err
				}
				scene.SetTestRunner(runner)
				log.Printf("replaying script %s", scriptPath)
			}
			return mapquiz.Run(scene)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON script of input to replay")
	return cmd
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <map.yaml>",
		Short: "Validate a map file",
		Long: `Validate a map file without opening a window.

This checks:
- YAML syntax and unknown keys
- Content and view sizes
- Region ids and outlines
- That the scene can be built with the current config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m, err := mapquiz.LoadMap(args[0])
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Failed to load map")
				return err
			}
			_, _ = fmt.Fprintf(out, "✓ Map %q parsed: %d regions, %gx%g\n",
				m.Name, len(m.Regions), m.Width, m.Height)

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			scene, err := mapquiz.NewScene(m, cfg)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "✗ Scene could not be built")
				return err
			}
			scene.Close()
			_, _ = fmt.Fprintln(out, "✓ Scene built")
			return nil
		},
	}
}

func newInitConfigCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config <path>",
		Short: "Write the default config to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := mapquiz.DefaultConfig().WriteFile(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
