package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/cargo-stabilize/pkg/config"
	"github.com/ajxudir/cargo-stabilize/pkg/constants"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
)

var writeFileFunc = os.WriteFile

// configOptions holds the config subcommand's flag values.
type configOptions struct {
	showDefaults  bool
	showEffective bool
	init          bool
	configPath    string
}

func newConfigCmd() *cobra.Command {
	opts := &configOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
		Long:  `Show the default or effective configuration, or create a .cargo-stabilize.yml template.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.showDefaults, "show-defaults", false, "Show default configuration")
	cmd.Flags().BoolVar(&opts.showEffective, "show-effective", false, "Show effective configuration")
	cmd.Flags().BoolVar(&opts.init, "init", false, "Create "+config.DefaultConfigFile+" template")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file to load for --show-effective")
	return cmd
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .cargo-stabilize.yml template in the working directory
//   - --show-defaults: Displays the embedded default configuration
//   - --show-effective: Displays the configuration a run would use
//
// Without flags it prints help.
func runConfig(cmd *cobra.Command, opts *configOptions) error {
	out := cmd.OutOrStdout()

	switch {
	case opts.init:
		workDir, err := getwdFunc()
		if err != nil {
			return errs.NewExitError(errs.ExitIOError, err)
		}
		return createConfigTemplate(out, workDir)
	case opts.showDefaults:
		_, _ = fmt.Fprintln(out, "Default configuration:")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, config.GetDefaultConfig())
		return nil
	case opts.showEffective:
		workDir, err := getwdFunc()
		if err != nil {
			return errs.NewExitError(errs.ExitIOError, err)
		}
		cfg, err := loadConfigFunc(opts.configPath, workDir)
		if err != nil {
			return err
		}
		return writeEffectiveConfig(out, cfg)
	default:
		return cmd.Help()
	}
}

// writeEffectiveConfig prints where the configuration came from followed by
// its YAML form.
func writeEffectiveConfig(w io.Writer, cfg *config.Config) error {
	source := cfg.Source
	if source == "" {
		source = "(built-in defaults)"
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errs.NewExitError(errs.ExitConfigError, fmt.Errorf("failed to encode config: %w", err))
	}

	_, _ = fmt.Fprintln(w, "Effective configuration:")
	_, _ = fmt.Fprintf(w, "Source: %s\n\n", source)
	_, _ = w.Write(data)
	return nil
}

// createConfigTemplate writes the embedded template to workDir. It refuses
// to overwrite an existing file.
func createConfigTemplate(w io.Writer, workDir string) error {
	path := filepath.Join(workDir, config.DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return errs.NewExitErrorf(errs.ExitConfigError, "config file already exists: %s", path)
	}

	if err := writeFileFunc(path, []byte(config.GetTemplateConfig()), 0o600); err != nil {
		return &errs.IOError{Op: "write", Path: path, Err: err}
	}

	_, _ = fmt.Fprintf(w, "%s Created configuration template: %s\n", constants.IconSuccess, path)
	return nil
}
