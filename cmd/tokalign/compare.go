package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tokalign/internal/align"
	"tokalign/internal/observ"
	"tokalign/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare [flags] <left> <right>",
	Short: "Show token summaries of two aligned texts side by side",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTraced(cmd, "compare", func() error { return runCompare(cmd, args) })
	},
}

func init() {
	compareCmd.Flags().Bool("file", false, "treat the arguments as file paths")
	compareCmd.Flags().Bool("unified", false, "append a line-level unified diff of the inputs")
}

func runCompare(cmd *cobra.Command, args []string) error {
	fromFile, err := cmd.Flags().GetBool("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	unified, err := cmd.Flags().GetBool("unified")
	if err != nil {
		return fmt.Errorf("failed to get unified flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	in := newInputSet(s)
	idx := timer.Begin("tokenize")
	a, err := in.sequence(s, args[0], fromFile)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	b, err := in.sequence(s, args[1], fromFile)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}
	timer.End(idx, fmt.Sprintf("%d+%d tokens", a.Len(), b.Len()))

	var al *align.Alignment
	if err := timer.Measure("align", func() error {
		var alignErr error
		al, alignErr = align.Align(a, b, s.Scoring)
		return alignErr
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := timer.Measure("report", func() error {
		if err := report.Compare(out, al.A, al.B, s.Report); err != nil {
			return err
		}
		if !s.Quiet {
			if err := report.WriteScore(out, al); err != nil {
				return err
			}
		}
		if unified {
			return writeUnified(out, report.Unified(a, b))
		}
		return nil
	}); err != nil {
		return err
	}
	printTimings(cmd, s, timer)
	return nil
}

func writeUnified(out io.Writer, diff string) error {
	if diff == "" {
		_, err := fmt.Fprintln(out, "no line differences")
		return err
	}
	_, err := io.WriteString(out, diff)
	return err
}
