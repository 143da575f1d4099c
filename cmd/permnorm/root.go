// Package main implements the permnorm command-line interface.
//
// permnorm makes sure owner and group can read and write, and everyone can
// read, every directory and regular file it is given. Directories also get
// execute for all three subjects. Bits are only added, never removed.
//
// Paths come from positional arguments and/or a path-list file
// (--paths-from, "-" for stdin). permnorm does not walk directories.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/permnorm/pkg/debug"
	"github.com/lucas-albers-lz4/permnorm/pkg/exitcodes"
	"github.com/lucas-albers-lz4/permnorm/pkg/fileutil"
	log "github.com/lucas-albers-lz4/permnorm/pkg/log"
	"github.com/lucas-albers-lz4/permnorm/pkg/pathlist"
	"github.com/lucas-albers-lz4/permnorm/pkg/permissions"
)

// platformSupported is swapped in tests to exercise the no-op path.
var platformSupported = permissions.Supported

// newRootCmd builds the permnorm command tree.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "permnorm [PATH...]",
		Short: "Normalize POSIX permission bits on files and directories",
		Long: `permnorm adds missing permission bits to the given paths:

  owner and group  read + write (+ execute on directories)
  other            read (+ execute on directories)

Existing bits are never removed, so running it twice changes nothing the
second time. Symlinks, sockets, devices and pipes are left alone. Paths that
disappear while permnorm runs are ignored.`,
		Example: `  # Normalize two paths
  permnorm ./shared ./shared/report.csv

  # Read the list from a file produced by another tool
  find /srv/share -print > paths.txt
  permnorm --paths-from paths.txt

  # Or from stdin, with development diagnostics
  find /srv/share | permnorm --paths-from - --debug`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			if err := applyLogging(s); err != nil {
				return err
			}
			dbg := debug.New(cmd.ErrOrStderr(), s.Debug)
			dbg.DumpValue("settings", *s)

			paths, err := collectPaths(cmd, args, s.PathsFrom)
			if err != nil {
				return err
			}
			return runNormalize(cmd, paths, dbg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.permnorm.yaml)")
	rootCmd.PersistentFlags().Bool(keyDebug, false, "enable development diagnostics (implies --log-level=debug)")
	rootCmd.PersistentFlags().String(keyLogLevel, "info", "set log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String(keyLogFormat, "", "log output format (json, text)")
	rootCmd.Flags().String(keyPathsFrom, "", "read additional paths from `FILE`: one verbatim path per line, - for stdin, or a .yaml/.yml list (which may carry # comments)")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// collectPaths returns the positional paths followed by those read from
// pathsFrom.
func collectPaths(cmd *cobra.Command, args []string, pathsFrom string) ([]string, error) {
	paths := append([]string(nil), args...)

	if pathsFrom != "" {
		listed, err := pathlist.Load(fileutil.DefaultFS, pathsFrom, cmd.InOrStdin())
		if err != nil {
			code := exitcodes.ExitIOError
			if errors.Is(err, pathlist.ErrPathListFormat) {
				code = exitcodes.ExitInputConfigurationError
			}
			return nil, &exitcodes.ExitCodeError{Code: code, Err: err}
		}
		log.Debug("Loaded path list", "file", pathsFrom, "count", len(listed))
		paths = append(paths, listed...)
	}

	if len(paths) == 0 {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredFlag,
			Err:  fmt.Errorf("no paths given: pass paths as arguments or use --%s", keyPathsFrom),
		}
	}
	return paths, nil
}

// runNormalize applies the policy to paths and logs a summary. Individual
// path failures are logged by the normalizer and never fail the command.
func runNormalize(cmd *cobra.Command, paths []string, dbg *debug.Channel) error {
	if !platformSupported {
		log.Warn("POSIX permission bits are not supported on this platform, nothing to do", "paths", len(paths))
		return nil
	}

	counts := map[permissions.Outcome]int{}
	n := permissions.NewNormalizer(fileutil.DefaultFS, permissions.Options{
		Debug:    dbg,
		OnResult: func(r permissions.Result) { counts[r.Outcome]++ },
	})
	n.NormalizeAll(paths)

	fmt.Fprintf(cmd.OutOrStdout(), "%d paths: %d updated, %d unchanged, %d skipped, %d vanished, %d failed\n",
		len(paths),
		counts[permissions.OutcomeUpdated],
		counts[permissions.OutcomeUnchanged],
		counts[permissions.OutcomeSkipped],
		counts[permissions.OutcomeVanished],
		counts[permissions.OutcomeReadError]+counts[permissions.OutcomeWriteError]+counts[permissions.OutcomeInvalidMode],
	)
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute command: %w", err)
	}
	return nil
}
