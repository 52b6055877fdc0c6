package main

import (
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tokalign/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tokalign",
	Short: "Token-aware text alignment and diff annotation",
	Long: `tokalign splits two texts into tokens, aligns them with a weighted
Needleman-Wunsch scorer and reports the aligned pair with gap spacers,
padding and colour tags`,
	SilenceUsage: true,
}

// main initializes the CLI and executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	setupRoot()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootOnce sync.Once

// setupRoot registers subcommands and persistent flags once.
func setupRoot() {
	rootOnce.Do(func() {
		// Устанавливаем версию для автоматического флага --version
		rootCmd.Version = version.Version

		rootCmd.AddCommand(tokenizeCmd)
		rootCmd.AddCommand(alignCmd)
		rootCmd.AddCommand(compareCmd)
		rootCmd.AddCommand(batchCmd)
		rootCmd.AddCommand(versionCmd)

		// Глобальные флаги
		rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
		rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
		rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
		rootCmd.PersistentFlags().String("config", "", "path to tokalign.toml (default: search upward from the working directory)")
		rootCmd.PersistentFlags().String("splitter", "", "token splitter (words|chars), overrides [render].splitter")

		rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
		rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
		rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
		rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "number of events kept by the ring tracer")
		rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

		rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
		rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
		rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
	})
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
