package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"tokalign/internal/align"
	"tokalign/internal/lexer"
	"tokalign/internal/sequence"
	"tokalign/internal/token"
	"tokalign/internal/trace"
)

// ErrSkipped marks pairs that never reached a worker because the batch was cancelled.
var ErrSkipped = errors.New("driver: pair skipped")

// Options configure AlignPairs.
type Options struct {
	// Jobs caps the number of concurrent alignments; <= 0 means GOMAXPROCS.
	Jobs int
	// FailFast stops the batch at the first failed pair.
	FailFast bool
	Scoring  align.Scoring
	// Splitter is a name accepted by lexer.SplitterByName.
	Splitter     string
	NormalizeNFC bool
	// Lexer, when set, replaces the one built from Splitter and NormalizeNFC.
	Lexer *lexer.Lexer
	// Filler pads the records' renderings; zero means token.DefaultFiller.
	Filler   rune
	Progress ProgressSink
}

func (o *Options) filler() rune {
	if o.Filler == 0 {
		return token.DefaultFiller
	}
	return o.Filler
}

func (o *Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

// AlignPairs aligns every pair in parallel. The returned slice is parallel to
// pairs. A pair that fails to tokenize keeps its error in PairResult.Err; the
// batch error is non-nil only on cancellation or, with FailFast, the first
// failure.
func AlignPairs(ctx context.Context, pairs []Pair, opts Options) ([]PairResult, error) {
	if err := opts.Scoring.Validate(); err != nil {
		return nil, err
	}
	lx := opts.Lexer
	if lx == nil {
		splitter, err := lexer.SplitterByName(opts.Splitter)
		if err != nil {
			return nil, err
		}
		lx = lexer.New(lexer.Options{Splitter: splitter, NormalizeNFC: opts.NormalizeNFC})
	}

	results := make([]PairResult, len(pairs))
	for i, p := range pairs {
		results[i] = PairResult{Pair: p, Err: ErrSkipped}
		emit(opts.Progress, Event{Pair: p.ID, Stage: StageTokenize, Status: StatusQueued})
	}
	if len(pairs) == 0 {
		return results, nil
	}

	batchSpan, ctx := trace.Start(ctx, trace.ScopeDriver, "batch")
	batchSpan.WithExtra("pairs", fmt.Sprint(len(pairs)))
	failed := 0
	defer func() {
		batchSpan.WithExtra("failed", fmt.Sprint(failed)).End("")
	}()

	// Результаты пишутся по уникальному индексу, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(pairs)))

	for i := range pairs {
		g.Go(func() error {
			pctx := trace.WithPair(gctx, pairs[i].ID)
			if err := gctx.Err(); err != nil {
				trace.Note(pctx, trace.ScopePair, "skipped", err.Error())
				return err
			}
			res := alignOne(pctx, lx, pairs[i], &opts)
			results[i] = res
			if res.Err != nil && opts.FailFast {
				return fmt.Errorf("pair %s: %w", res.Pair.ID, res.Err)
			}
			return nil
		})
	}
	err := g.Wait()

	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	return results, err
}

func alignOne(ctx context.Context, lx *lexer.Lexer, p Pair, opts *Options) (res PairResult) {
	started := time.Now()
	res.Pair = p
	span, ctx := trace.Start(ctx, trace.ScopePair, "pair:"+p.ID)
	defer func() {
		res.Elapsed = time.Since(started)
		ev := Event{Pair: p.ID, Status: StatusDone, Elapsed: res.Elapsed}
		detail := "ok"
		if res.Err != nil {
			ev.Status, ev.Err = StatusError, res.Err
			detail = res.Err.Error()
		}
		emit(opts.Progress, ev)
		span.End(detail)
	}()

	emit(opts.Progress, Event{Pair: p.ID, Stage: StageTokenize, Status: StatusWorking})
	pass, _ := trace.Start(ctx, trace.ScopePass, "tokenize")
	a, b, err := tokenizePair(lx, p)
	if err != nil {
		pass.End(err.Error())
		res.Err = err
		return res
	}
	pass.WithExtra("left", fmt.Sprint(a.Len())).WithExtra("right", fmt.Sprint(b.Len())).End("")
	res.Alignment = alignSequences(ctx, a, b, p.ID, opts)

	res.Record = newRecord(p.ID, res.Alignment, opts.filler())
	return res
}

func tokenizePair(lx *lexer.Lexer, p Pair) (a, b *sequence.Sequence, err error) {
	if a, err = sequence.FromStringWith(lx, p.Left); err != nil {
		return nil, nil, fmt.Errorf("left: %w", err)
	}
	if b, err = sequence.FromStringWith(lx, p.Right); err != nil {
		return nil, nil, fmt.Errorf("right: %w", err)
	}
	return a, b, nil
}

func alignSequences(ctx context.Context, a, b *sequence.Sequence, id string, opts *Options) *align.Alignment {
	emit(opts.Progress, Event{Pair: id, Stage: StageScore, Status: StatusWorking})
	pass, pctx := trace.Start(ctx, trace.ScopePass, "score")
	mx := align.Score(a, b, opts.Scoring)
	if trace.FromContext(ctx).Level() >= trace.LevelDebug {
		trace.Note(pctx, trace.ScopePass, "matrix", "\n"+mx.Format(a, b))
	}
	pass.WithExtra("score", fmt.Sprintf("%g", mx.Final())).End("")

	emit(opts.Progress, Event{Pair: id, Stage: StageReconstruct, Status: StatusWorking})
	pass, _ = trace.Start(ctx, trace.ScopePass, "reconstruct")
	outA, outB := align.Reconstruct(a, b, mx)
	pass.WithExtra("columns", fmt.Sprint(outA.Len())).End("")

	return &align.Alignment{A: outA, B: outB, Matrix: mx, Left: a, Right: b}
}
