package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
)

// ErrStaleLoad is returned by ViewLoader.Load when a newer load was started
// before this one finished. The result is discarded; the caller should act
// only on the newest request's outcome.
var ErrStaleLoad = errors.New("stale load superseded by a newer request")

// viewBuilder is the slice of LogService the loader depends on.
type viewBuilder interface {
	BuildView(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error)
}

// ViewLoader serializes daily-log view loads for one display slot (e.g. the
// selected day in a log sheet). Each Load cancels the previous in-flight
// fetch and stamps itself with a monotonically increasing sequence number;
// a load whose sequence is no longer the newest when it completes reports
// ErrStaleLoad instead of its result. Ordering is therefore decided by
// request sequence, never by response arrival time, so a slow old fetch can
// never overwrite a fast new one.
//
// A ViewLoader is safe for concurrent use. Use one loader per display slot;
// independent slots should use independent loaders.
type ViewLoader struct {
	builder viewBuilder

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewViewLoader constructs a ViewLoader on top of the given view builder,
// typically a *LogService.
func NewViewLoader(builder viewBuilder) *ViewLoader {
	return &ViewLoader{builder: builder}
}

// Load fetches and assembles the view for one daily log, superseding any
// load still in flight. Returns ErrStaleLoad when a newer Load started
// before this one completed, context.Canceled when the superseding load
// cancelled this one mid-fetch, or the builder's error otherwise.
func (l *ViewLoader) Load(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error) {
	ctx, seq := l.begin(ctx)

	view, err := l.builder.BuildView(ctx, logID, resolution)

	if !l.isCurrent(seq) {
		return timeline.DailyLogView{}, ErrStaleLoad
	}
	if err != nil {
		return timeline.DailyLogView{}, err
	}
	return view, nil
}

// begin registers a new load: cancels the previous one, advances the
// sequence, and returns a cancellable child context plus this load's stamp.
func (l *ViewLoader) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.seq++
	return ctx, l.seq
}

// isCurrent reports whether the given stamp still belongs to the newest load.
func (l *ViewLoader) isCurrent(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq == seq
}
