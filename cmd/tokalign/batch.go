package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tokalign/internal/driver"
	"tokalign/internal/observ"
	"tokalign/internal/sequence"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] pairs.jsonl",
	Short: "Align many pairs in parallel",
	Long: `Batch reads JSON Lines of {"id","left","right"} objects, aligns every pair
in parallel and writes one result record per pair`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTraced(cmd, "batch", func() error { return runBatch(cmd, args) })
	},
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel alignments (0=auto)")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	batchCmd.Flags().Bool("fail-fast", false, "stop at the first failed pair")
	batchCmd.Flags().String("out", "", "write results to this file instead of stdout")
	batchCmd.Flags().String("out-format", "", "result format (json|msgpack); default by --out extension, json otherwise")
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	failFast, err := cmd.Flags().GetBool("fail-fast")
	if err != nil {
		return fmt.Errorf("failed to get fail-fast flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	outFormatName, err := cmd.Flags().GetString("out-format")
	if err != nil {
		return fmt.Errorf("failed to get out-format flag: %w", err)
	}
	outFormat, err := resultFormat(outFormatName, outPath)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	var pairs []driver.Pair
	if err := timer.Measure("load", func() error {
		var loadErr error
		pairs, loadErr = driver.LoadPairsFile(args[0])
		return loadErr
	}); err != nil {
		return err
	}

	opts := s.driverOptions()
	opts.Jobs = jobs
	opts.FailFast = failFast

	idx := timer.Begin("align")
	var results []driver.PairResult
	var batchErr error
	if uiModeValue.progressOn(s.Quiet, os.Stderr) {
		results, batchErr = runBatchWithUI(cmd.Context(), os.Stderr, "aligning "+filepath.Base(args[0]), pairs, opts)
	} else {
		results, batchErr = driver.AlignPairs(cmd.Context(), pairs, opts)
	}
	failed := countFailed(results)
	timer.End(idx, fmt.Sprintf("%d pairs, %d failed", len(pairs), failed))
	if results == nil {
		return batchErr
	}

	if err := timer.Measure("write", func() error {
		return writeBatchResults(cmd, outPath, results, outFormat)
	}); err != nil {
		return err
	}

	if !s.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "aligned %d pairs, %d failed\n", len(pairs)-failed, failed)
	}
	printTimings(cmd, s, timer)
	if batchErr != nil {
		return batchErr
	}
	if failed > 0 {
		return newPairFailures(results)
	}
	return nil
}

// pairFailures reports the pairs a batch could not align. A failing command
// dumps the trace of these pairs instead of the whole ring.
type pairFailures struct {
	ids   []string
	total int
}

func newPairFailures(results []driver.PairResult) *pairFailures {
	pf := &pairFailures{total: len(results)}
	for i := range results {
		if err := results[i].Err; err != nil && !errors.Is(err, driver.ErrSkipped) {
			pf.ids = append(pf.ids, results[i].Pair.ID)
		}
	}
	return pf
}

func (e *pairFailures) Error() string {
	return fmt.Sprintf("%d of %d pairs failed", len(e.ids), e.total)
}

func countFailed(results []driver.PairResult) int {
	n := 0
	for i := range results {
		if results[i].Err != nil {
			n++
		}
	}
	return n
}

func resultFormat(name, outPath string) (sequence.Format, error) {
	if name != "" {
		return sequence.ParseFormat(name)
	}
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".mp", ".msgpack", ".mpk":
		return sequence.FormatMsgpack, nil
	default:
		return sequence.FormatJSON, nil
	}
}

func writeBatchResults(cmd *cobra.Command, outPath string, results []driver.PairResult, f sequence.Format) (err error) {
	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		file, createErr := os.Create(outPath)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = file
	}
	return driver.WriteResults(out, results, f)
}
