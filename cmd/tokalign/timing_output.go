package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokalign/internal/observ"
)

// printTimings writes the phase summary to stderr when --timings is set.
func printTimings(cmd *cobra.Command, s *settings, timer *observ.Timer) {
	if s == nil || !s.Timings || timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
