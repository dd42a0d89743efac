// Package app implements the bmset command line driver.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/bmset"
)

// env carries state shared by all subcommands.
type env struct {
	logLevel  string
	logFormat string
	logger    *bmset.Logger
}

// NewRootCmd builds the bmset command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "bmset",
		Short: "Drive bounded bitmap sets from the command line",
		Long: `
	bmset creates fixed-range integer sets backed by a bitmap and runs
	operations against them: the reference scenario, an explicit list of
	operations, or a concurrent stress load against a locked set.
	`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), e.logLevel, e.logFormat)
			if err != nil {
				return err
			}
			e.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&e.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newSmokeCmd(e))
	root.AddCommand(newApplyCmd(e))
	root.AddCommand(newStressCmd(e))
	root.AddCommand(newVersionCmd())

	return root
}

func newLogger(w io.Writer, level, format string) (*bmset.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return bmset.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return bmset.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// rangeFlags are the bounds and mode flags shared by apply and stress.
type rangeFlags struct {
	min    int64
	max    int64
	locked bool
}

func (f *rangeFlags) register(cmd *cobra.Command, lo, hi int64, locked bool) {
	cmd.Flags().Int64Var(&f.min, "min", lo, "smallest value of the set")
	cmd.Flags().Int64Var(&f.max, "max", hi, "largest value of the set")
	cmd.Flags().BoolVar(&f.locked, "locked", locked, "guard the set with an internal lock")
}

func (f *rangeFlags) options() []bmset.Option {
	if f.locked {
		return []bmset.Option{bmset.WithLocking()}
	}
	return nil
}
