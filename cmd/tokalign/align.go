package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tokalign/internal/driver"
	"tokalign/internal/observ"
	"tokalign/internal/report"
	"tokalign/internal/sequence"
)

var alignCmd = &cobra.Command{
	Use:   "align [flags] <left> <right>",
	Short: "Align two texts token by token",
	Long: `Align scores the two texts with a weighted Needleman-Wunsch recurrence
and prints the aligned pair`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTraced(cmd, "align", func() error { return runAlign(cmd, args) })
	},
}

func init() {
	alignCmd.Flags().String("format", "side", "output format (side|padded|annotated|matrix|json|msgpack)")
	alignCmd.Flags().Bool("file", false, "treat the arguments as file paths")
}

func runAlign(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fromFile, err := cmd.Flags().GetBool("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	var pair driver.Pair
	err = timer.Measure("load", func() error {
		in := newInputSet(s)
		left, loadErr := in.text(args[0], fromFile)
		if loadErr != nil {
			return loadErr
		}
		right, loadErr := in.text(args[1], fromFile)
		if loadErr != nil {
			return loadErr
		}
		pair = driver.Pair{ID: "1", Left: left, Right: right}
		return nil
	})
	if err != nil {
		return err
	}

	var res driver.PairResult
	err = timer.Measure("align", func() error {
		results, alignErr := driver.AlignPairs(cmd.Context(), []driver.Pair{pair}, s.driverOptions())
		if alignErr != nil {
			return alignErr
		}
		res = results[0]
		return res.Err
	})
	if err != nil {
		return fmt.Errorf("alignment failed: %w", err)
	}

	err = timer.Measure("report", func() error {
		return writeAlignment(cmd.OutOrStdout(), res, strings.ToLower(format), s)
	})
	if err != nil {
		return err
	}
	printTimings(cmd, s, timer)
	return nil
}

func writeAlignment(out io.Writer, res driver.PairResult, format string, s *settings) error {
	al := res.Alignment
	switch format {
	case "side":
		return report.SideBySide(out, al, s.Report)
	case "padded":
		_, err := fmt.Fprintf(out, "%s\n%s\n", al.A.Padded(s.filler()), al.B.Padded(s.filler()))
		return err
	case "annotated":
		_, err := fmt.Fprintf(out, "%s\n%s\n", al.A.Annotated(s.filler()), al.B.Annotated(s.filler()))
		return err
	case "matrix":
		if _, err := io.WriteString(out, al.FormatMatrix()); err != nil {
			return err
		}
		return report.WriteScore(out, al)
	case "json":
		return driver.WriteResults(out, []driver.PairResult{res}, sequence.FormatJSON)
	case "msgpack":
		return driver.WriteResults(out, []driver.PairResult{res}, sequence.FormatMsgpack)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		Scoring:      s.Scoring,
		Splitter:     s.Splitter,
		NormalizeNFC: s.Lexer.NormalizeNFC,
		Filler:       s.filler(),
	}
}
