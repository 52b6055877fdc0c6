package driver

import "time"

// Stage describes a step of a single pair alignment.
type Stage string

const (
	// StageTokenize splits both texts into sequences.
	StageTokenize Stage = "tokenize"
	// StageScore fills the score and trace matrices.
	StageScore Stage = "score"
	// StageReconstruct walks the trace back into aligned sequences.
	StageReconstruct Stage = "reconstruct"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the pair is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the pair is in the given stage.
	StatusWorking Status = "working"
	// StatusDone indicates the pair is aligned.
	StatusDone Status = "done"
	// StatusError indicates the pair failed.
	StatusError Status = "error"
)

// Event reports progress for a pair (or for the whole batch when Pair is empty).
type Event struct {
	Pair    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. OnEvent is called from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
