// cli.go - command-line interface construction.
//
// Built on a github.com/spf13/cobra command tree with a root command plus
// explicit subcommands. Exit codes: 0 success, 1 differences found (with
// --set-exit-code), 2 error.
package xmldiff

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	// ExitCodeSuccess indicates the run completed with no reportable problem.
	ExitCodeSuccess = 0
	// ExitCodeDifferences indicates differences were found and
	// --set-exit-code was requested.
	ExitCodeDifferences = 1
	// ExitCodeError indicates a parse, I/O, or configuration error.
	ExitCodeError = 2
)

// cliFlags holds the pflag-bound values shared by the root command and the
// explicit diff subcommand.
type cliFlags struct {
	configPath   string
	output       string
	include      []string
	exclude      []string
	excludeEmpty bool
	setExitCode  bool
	logLevel     string
	serverAddr   string
}

// NewRootCommand builds the xmldiff cobra command tree: a root command that
// behaves like "diff" when given two file arguments, plus explicit diff,
// watch, and serve subcommands.
func NewRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "xmldiff <expected.xml> <actual.xml>",
		Short:         "Structural diff for XML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, flags, args[0], args[1])
		},
	}

	registerCompareFlags(root, flags)
	root.AddCommand(newDiffCommand(flags))
	root.AddCommand(newWatchCommand(flags))
	root.AddCommand(newServeCommand(flags))

	return root
}

func registerCompareFlags(cmd *cobra.Command, flags *cliFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&flags.configPath, "config", "c", "", "path to a YAML configuration file")
	fs.StringVarP(&flags.output, "output", "o", "", "output format: compact, brief, github, gitlab, gitea, detailed, json, html")
	fs.StringSliceVar(&flags.include, "include", nil, "only diff elements whose local name matches one of these globs")
	fs.StringSliceVar(&flags.exclude, "exclude", nil, "never diff elements whose local name matches one of these globs")
	fs.BoolVar(&flags.excludeEmpty, "exclude-empty", false, "suppress Added/Removed edits for nodes whose attributes and text are all empty")
	fs.BoolVarP(&flags.setExitCode, "set-exit-code", "s", false, "exit with code 1 when differences are found")
	fs.StringVar(&flags.logLevel, "log-level", "", "log level: debug enables debug output; any other value logs at info level")
}

func newDiffCommand(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <expected.xml> <actual.xml>",
		Short: "Compare two XML documents and print a structural diff",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, flags, args[0], args[1])
		},
	}
	registerCompareFlags(cmd, flags)
	return cmd
}

func newWatchCommand(flags *cliFlags) *cobra.Command {
	var interval string
	cmd := &cobra.Command{
		Use:   "watch <expected.xml> <actual.xml>",
		Short: "Re-run the diff whenever either file changes on disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg.LogLevel == "debug")
			if err != nil {
				return err
			}
			defer logger.Sync()
			return RunWatch(cmd.Context(), args[0], args[1], cfg, cmd.OutOrStdout(), logger)
		},
	}
	registerCompareFlags(cmd, flags)
	cmd.Flags().StringVar(&interval, "interval", "", "unused, reserved for future debounce tuning")
	return cmd
}

func newServeCommand(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP diff API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags)
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg.LogLevel == "debug")
			if err != nil {
				return err
			}
			defer logger.Sync()
			addr := cfg.ServerAddr
			if flags.serverAddr != "" {
				addr = flags.serverAddr
			}
			return RunServer(cmd.Context(), addr, logger)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.configPath, "config", flags.configPath, "path to a YAML configuration file")
	fs.StringVar(&flags.serverAddr, "addr", "", "address to listen on, e.g. :8080")
	return cmd
}

// resolveConfig loads file/environment config and layers CLI flag overrides
// on top, so flags always win over defaults and file/environment settings.
func resolveConfig(flags *cliFlags) (*Config, error) {
	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	var excludeEmpty *bool
	if flags.excludeEmpty {
		excludeEmpty = &flags.excludeEmpty
	}
	cfg.ApplyFlagOverrides(flags.include, flags.exclude, excludeEmpty, flags.output, flags.logLevel, flags.serverAddr)
	return cfg, nil
}

func runDiff(cmd *cobra.Command, flags *cliFlags, expectedPath, actualPath string) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	expectedData, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("xmldiff: reading %q: %w", expectedPath, err)
	}
	actualData, err := os.ReadFile(actualPath)
	if err != nil {
		return fmt.Errorf("xmldiff: reading %q: %w", actualPath, err)
	}

	logger, err := NewLogger(cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts, _ := cfg.ToOptions()
	opts.Logger = logger
	edits, err := Diff(expectedData, actualData, opts)
	if err != nil {
		return err
	}

	formatter, err := GetFormatter(cfg.OutputFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeOutput(out, formatter.Format(edits, DefaultFormatOptions())); err != nil {
		return err
	}

	if flags.setExitCode && len(edits) > 0 {
		return exitCodeError{code: ExitCodeDifferences}
	}
	return nil
}

func writeOutput(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// exitCodeError carries a non-error exit code (differences found, not a
// failure) through cobra's error-returning RunE without printing anything.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return "" }

// ExitCode extracts the intended process exit code from an error returned
// by the root command, defaulting to ExitCodeError for any other error.
func ExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if ec, ok := err.(exitCodeError); ok {
		return ec.code
	}
	return ExitCodeError
}
