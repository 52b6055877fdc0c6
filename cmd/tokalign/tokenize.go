package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tokalign/internal/observ"
	"tokalign/internal/report"
	"tokalign/internal/sequence"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <text>",
	Short: "Split text into tokens",
	Long:  `Tokenize splits text into words, punctuation and whitespace tokens and lists them`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTraced(cmd, "tokenize", func() error { return runTokenize(cmd, args) })
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|summary|json|msgpack)")
	tokenizeCmd.Flags().Bool("file", false, "treat the argument as a file path")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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
	var seq *sequence.Sequence
	err = timer.Measure("tokenize", func() error {
		var tokErr error
		seq, tokErr = newInputSet(s).sequence(s, args[0], fromFile)
		return tokErr
	})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	err = timer.Measure("report", func() error {
		switch strings.ToLower(format) {
		case "pretty":
			return report.FormatTokensPretty(out, seq)
		case "summary":
			return report.Summary(out, seq, s.Report)
		case "json":
			return report.FormatTokensJSON(out, seq)
		case "msgpack":
			return sequence.Encode(out, seq, sequence.FormatMsgpack)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	})
	if err != nil {
		return err
	}
	printTimings(cmd, s, timer)
	return nil
}
