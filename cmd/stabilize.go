package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ajxudir/cargo-stabilize/pkg/config"
	"github.com/ajxudir/cargo-stabilize/pkg/display"
	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/manifest"
	"github.com/ajxudir/cargo-stabilize/pkg/output"
	"github.com/ajxudir/cargo-stabilize/pkg/preflight"
	"github.com/ajxudir/cargo-stabilize/pkg/registry"
	"github.com/ajxudir/cargo-stabilize/pkg/stabilize"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
	"github.com/ajxudir/cargo-stabilize/pkg/warnings"
)

// Seams replaced in tests.
var (
	loadConfigFunc     = config.LoadConfig
	newClientFunc      = registry.New
	validateRegistryFn = preflight.ValidateRegistry
	getwdFunc          = os.Getwd
)

// runStabilize is the root command: load config, load the manifest, check
// the registry, rewrite versions, save, report. Registry check findings are
// warnings; a missing search tool fails each query instead.
func runStabilize(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout := cmd.OutOrStdout()

	workDir, err := getwdFunc()
	if err != nil {
		return errs.NewExitError(errs.ExitIOError, fmt.Errorf("failed to get working directory: %w", err))
	}

	cfg, err := loadConfigFunc(opts.configPath, workDir)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, ok := output.ParseFormat(opts.output)
	if !ok {
		return errs.NewExitError(errs.ExitConfigError, errs.NewConfigValidationError(
			"--output", fmt.Sprintf("unsupported format %q", opts.output), output.ValidFormats...))
	}
	display.SetColor(!opts.noColor && os.Getenv("NO_COLOR") == "" && format == output.FormatText && isTerminal(stdout))

	manifestPath := cfg.Manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(workDir, manifestPath)
	}
	doc, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	for _, msg := range validateRegistryFn(cfg.Registry).Messages() {
		warnings.Warnf("%s", msg)
	}

	client, err := newClientFunc(cfg.Registry)
	if err != nil {
		return errs.NewExitError(errs.ExitConfigError, err)
	}

	var printer *display.Printer
	var reporter stabilize.Reporter
	if format == output.FormatText {
		printer = display.NewPrinter(stdout)
		reporter = printer
	}

	summary, err := stabilize.Run(ctx, doc, client, stabilize.Options{
		UpgradeAll: cfg.Upgrade,
		Sections:   cfg.Sections,
	}, reporter)
	if err != nil {
		return errs.NewExitError(errs.ExitInterrupted, fmt.Errorf("interrupted, %s not written: %w", cfg.Manifest, err))
	}

	written := false
	if !opts.dryRun {
		if err := doc.Save(cfg.Normalize); err != nil {
			return err
		}
		written = true
	}

	info := display.RunInfo{
		Manifest: cfg.Manifest,
		Registry: registry.Label(cfg.Registry.Name),
		DryRun:   opts.dryRun,
		Written:  written,
	}
	if err := report(stdout, format, printer, summary, info); err != nil {
		return errs.NewExitError(errs.ExitIOError, err)
	}
	return summary.Err()
}

// applyFlagOverrides copies explicitly set flags over config values.
func applyFlagOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if opts.upgrade {
		cfg.Upgrade = true
	}
	if opts.normalize {
		cfg.Normalize = true
	}
	if flags.Changed("manifest-path") {
		cfg.Manifest = opts.manifestPath
	}
	if flags.Changed("registry") {
		cfg.Registry.Name = opts.registry
	}
	if flags.Changed("source") {
		cfg.Registry.Source = strings.ToLower(strings.TrimSpace(opts.source))
	}
	verbose.Printf("Effective settings: manifest=%s sections=%v upgrade=%t normalize=%t source=%s registry=%s",
		cfg.Manifest, cfg.Sections, cfg.Upgrade, cfg.Normalize, cfg.Registry.Source, cfg.Registry.Name)
}

// report writes the end of run output in the selected format. Text output
// already printed each change through the printer.
func report(w io.Writer, format output.Format, printer *display.Printer, summary *stabilize.Summary, info display.RunInfo) error {
	switch format {
	case output.FormatText:
		printer.Summary(summary)
		if info.DryRun {
			printer.DryRun(info.Manifest)
		}
		return nil
	case output.FormatTable:
		for _, section := range summary.Missing {
			warnings.Warnf("No %s", section)
		}
		for _, section := range summary.Invalid {
			warnings.Warnf("Invalid %s", section)
		}
		if len(summary.Changes)+len(summary.Failures) > 0 {
			display.ChangesTable(summary, info.DryRun).Render(w)
			_, _ = fmt.Fprintln(w)
		}
		for _, line := range display.SummaryLines(summary) {
			_, _ = fmt.Fprintln(w, line.String())
		}
		return nil
	default:
		return output.WriteRunResult(w, format, display.RunResult(summary, info))
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
