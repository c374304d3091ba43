// Package cli wires the jiggler's components behind a cobra command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stigoleg/jiggler/internal/config"
)

type options struct {
	flags    config.Flags
	headless bool
	version  string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{version: version}

	cmd := &cobra.Command{
		Use:   "jiggler",
		Short: "Keep the cursor moving while you are away",
		Long: `jiggler watches how long the system has been idle and, once the idle
threshold is reached, moves the mouse cursor a short distance every interval
until real input is seen again.`,
		Example: `  jiggler                       # interactive status screen
  jiggler --idle 2 --interval 15s
  jiggler --headless --policy idle-only
  jiggler config init`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, opts)
		},
	}

	opts.flags.Register(cmd.PersistentFlags())
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run without the terminal UI and log to stderr")

	cmd.AddCommand(newVersionCmd(version))
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, version string) int {
	cmd := NewRootCommand(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError(err))
		return 1
	}
	return 0
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jiggler version %s\n", version)
		},
	}
}

// loadSettings reads the settings file with every changed flag applied on top.
func loadSettings(cmd *cobra.Command, opts *options) (*config.Loader, config.Settings, error) {
	overrides, err := opts.flags.Overrides(cmd.Flags())
	if err != nil {
		return nil, config.Settings{}, err
	}

	loader := config.NewLoader(opts.flags.ConfigPath, nil, overrides...)
	s, err := loader.Load()
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return loader, s, nil
}
