package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ninjatrace/internal/chrometrace"
	"ninjatrace/internal/format"
	"ninjatrace/internal/ninjalog"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ninjatrace: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:           "ninjatrace <build-dir-or-log>",
		Short:         "Convert a .ninja_log into Chrome trace events",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveLogPath(args[0])
			if err != nil {
				return err
			}

			builds, err := readScheduledBuilds(path)
			if err != nil {
				return err
			}
			traces := ninjalog.ToTraces(builds)

			if output == "" {
				return chrometrace.Write(cmd.OutOrStdout(), traces, pretty)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			if err := chrometrace.Write(file, traces, pretty); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write the trace JSON to this file instead of stdout")
	flags.BoolVar(&pretty, "pretty", false, "indent the JSON output")

	cmd.AddCommand(newStatsCmd())

	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		formatFlag string
		nameWidth  int
	)

	cmd := &cobra.Command{
		Use:           "stats <build-dir-or-log>",
		Short:         "Summarize each build recorded in the log",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveLogPath(args[0])
			if err != nil {
				return err
			}

			builds, err := readScheduledBuilds(path)
			if err != nil {
				return err
			}
			stats := format.Summarize(builds)

			out := cmd.OutOrStdout()
			mode := strings.ToLower(formatFlag)
			if mode == "" || mode == "auto" {
				mode = autoStatsFormat(out)
			}

			width := nameWidth
			if width <= 0 {
				width = defaultNameWidth(out)
			}

			return format.WriteStats(out, stats, mode, width)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "auto", "output format: auto, table, plain, or json")
	flags.IntVar(&nameWidth, "name-width", 0, "maximum display width of target names (0 means fit the terminal)")

	return cmd
}

// resolveLogPath accepts either a ninja build directory or a log file
// path. A directory resolves to the .ninja_log inside it.
func resolveLogPath(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("%s does not exist", arg)
	}

	if info.IsDir() {
		candidate := filepath.Join(arg, ".ninja_log")
		ci, err := os.Stat(candidate)
		if err != nil {
			return "", fmt.Errorf("%s does not exist", candidate)
		}
		if !ci.Mode().IsRegular() {
			return "", fmt.Errorf("%s is not a regular file", candidate)
		}
		return candidate, nil
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", arg)
	}
	return arg, nil
}

func readScheduledBuilds(path string) ([]ninjalog.Build, error) {
	builds, err := ninjalog.ReadLog(path)
	if err != nil {
		return nil, err
	}
	for i := range builds {
		ninjalog.AssignSlots(&builds[i])
	}
	return builds, nil
}

// autoStatsFormat picks the table for terminals and tab-separated plain
// output when stdout is piped somewhere.
func autoStatsFormat(out io.Writer) string {
	file, ok := out.(*os.File)
	if !ok {
		return "plain"
	}
	fd := file.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "table"
	}
	return "plain"
}

// defaultNameWidth leaves room for the fixed-width stats columns and
// gives the rest of the terminal to the target name column.
func defaultNameWidth(out io.Writer) int {
	const fixedColumns = 56
	const minWidth = 20

	file, ok := out.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(file.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	if w-fixedColumns < minWidth {
		return minWidth
	}
	return w - fixedColumns
}
