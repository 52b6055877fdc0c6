package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tokalign/internal/driver"
	"tokalign/internal/ui"
)

// uiMode is the --ui setting of batch.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// progressOn decides whether the progress view is drawn on out. Results go to
// stdout, so out is stderr; --quiet silences it unless --ui=on asks for it.
func (m uiMode) progressOn(quiet bool, out *os.File) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !quiet && isTerminal(out)
	}
}

type batchOutcome struct {
	results []driver.PairResult
	err     error
}

// runBatchWithUI aligns pairs while a Bubble Tea program renders the progress
// events. The program exits when the driver closes the event channel.
func runBatchWithUI(ctx context.Context, out *os.File, title string, pairs []driver.Pair, opts driver.Options) ([]driver.PairResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.AlignPairs(ctx, pairs, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	ids := make([]string, len(pairs))
	for i, p := range pairs {
		ids[i] = p.ID
	}
	model := ui.NewProgressModel(title, ids, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем канал, чтобы воркеры не заблокировались
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
