// Package cmd implements the command-line interface for cargo-stabilize.
// The root command runs the stabilize pipeline; version and config are
// informational subcommands.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/ajxudir/cargo-stabilize/pkg/errors"
	"github.com/ajxudir/cargo-stabilize/pkg/verbose"
	"github.com/ajxudir/cargo-stabilize/pkg/warnings"
)

var exitFunc = os.Exit

// usageTemplate keeps the cargo-style layout of the usage text.
const usageTemplate = `Usage:
    {{.UseLine}}{{if .HasAvailableSubCommands}}
    {{.CommandPath}} [command]

Commands:{{range .Commands}}{{if .IsAvailableCommand}}
    {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// rootOptions holds the root command's flag values.
type rootOptions struct {
	upgrade      bool
	manifestPath string
	configPath   string
	registry     string
	source       string
	dryRun       bool
	normalize    bool
	output       string
	noColor      bool
	verbose      bool
	version      bool
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "cargo-stabilize",
		Short: "Pin wildcard Cargo dependencies to their latest version",
		Long: `Replace "*" dependency versions in Cargo.toml with the newest version
published on the registry. With --upgrade every version is replaced.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				verbose.Enable()
			}
			if w := GetArchMismatchWarning(); w != "" {
				warnings.Warnf("%s", strings.TrimRight(w, "\n"))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				writeVersionInfo(cmd.OutOrStdout())
				return nil
			}
			return runStabilize(cmd, opts)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetUsageTemplate(usageTemplate)

	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose debug output")

	flags := root.Flags()
	flags.BoolVar(&opts.upgrade, "upgrade", false, "Upgrade all dependency versions to the newest,\nnot just wildcards")
	flags.StringVar(&opts.manifestPath, "manifest-path", "", "Path to Cargo.toml (default from config: Cargo.toml)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (default .cargo-stabilize.yml if present)")
	flags.StringVar(&opts.registry, "registry", "", "Registry name passed to the search command (default crates-io)")
	flags.StringVar(&opts.source, "source", "", "Registry source: search or api")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report changes without writing the manifest")
	flags.BoolVar(&opts.normalize, "normalize", false, "Re-encode the whole manifest instead of editing in place")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: text, table, json, csv, xml")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.version, "version", "v", false, "Show version information")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the CLI with os.Args and exits with the code for the
// returned error:
//   - 0: Success
//   - 1: Manifest could not be read or written
//   - 2: Manifest is not valid TOML or not a table
//   - 3: Partial failure (some queries failed, manifest written)
//   - 4: Configuration or validation error
//   - 130: Interrupted before the manifest was written
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if code := run(ctx, os.Args[1:], os.Stdout, os.Stderr); code != errs.ExitSuccess {
		stop()
		exitFunc(code)
	}
}

// run executes the command tree with args and returns the exit code.
// Errors are printed to stderr with resolution hints.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)

	restore := warnings.SetWarningWriter(stderr)
	defer restore()

	known, unknown := splitArgs(root, args)
	for _, tok := range unknown {
		warnings.Warnf("Unknown command: %s\n%s", tok, strings.TrimRight(root.UsageString(), "\n"))
	}
	root.SetArgs(known)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return errs.ExitSuccess
	}

	code := errs.GetExitCode(err)
	errs.PrintErrorWithHints(stderr, []error{err}, verbose.IsEnabled())
	if pse, ok := errs.IsPartialSuccess(err); ok {
		verbose.Printf("Exit code %d: partial success - %d succeeded, %d failed", code, pse.Succeeded, pse.Failed)
	} else {
		verbose.Printf("Exit code %d: %v", code, err)
	}
	return code
}
