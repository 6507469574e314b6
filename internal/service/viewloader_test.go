package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MwangiSara/ELD-Trucking-System/internal/service"
	"github.com/MwangiSara/ELD-Trucking-System/internal/timeline"
)

// mockViewBuilder lets tests control when each BuildView call completes.
type mockViewBuilder struct {
	build func(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error)
}

func (m *mockViewBuilder) BuildView(ctx context.Context, logID uuid.UUID, resolution int) (timeline.DailyLogView, error) {
	return m.build(ctx, logID, resolution)
}

func TestViewLoader_SingleLoadSucceeds(t *testing.T) {
	logID := uuid.New()
	loader := service.NewViewLoader(&mockViewBuilder{
		build: func(_ context.Context, id uuid.UUID, resolution int) (timeline.DailyLogView, error) {
			assert.Equal(t, logID, id)
			return timeline.DailyLogView{Resolution: resolution}, nil
		},
	})

	view, err := loader.Load(context.Background(), logID, 24)

	require.NoError(t, err)
	assert.Equal(t, 24, view.Resolution)
}

func TestViewLoader_NewerLoadCancelsOlder(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	loader := service.NewViewLoader(&mockViewBuilder{
		build: func(ctx context.Context, _ uuid.UUID, resolution int) (timeline.DailyLogView, error) {
			if resolution == 24 { // the first, slow load
				close(firstStarted)
				select {
				case <-release:
				case <-ctx.Done():
					return timeline.DailyLogView{}, ctx.Err()
				}
			}
			return timeline.DailyLogView{Resolution: resolution}, nil
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = loader.Load(context.Background(), uuid.New(), 24)
	}()

	<-firstStarted

	// Second load supersedes the first while it is still in flight.
	view, err := loader.Load(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	assert.Equal(t, 48, view.Resolution)

	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, service.ErrStaleLoad, "superseded load must not surface its result")
}

func TestViewLoader_IndependentLoadersDoNotInterfere(t *testing.T) {
	// One loader per display slot: a load on one slot must never supersede
	// a load in flight on another slot.
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	builder := &mockViewBuilder{
		build: func(ctx context.Context, _ uuid.UUID, resolution int) (timeline.DailyLogView, error) {
			if resolution == 24 { // the slow load on slot A
				close(firstStarted)
				select {
				case <-release:
				case <-ctx.Done():
					return timeline.DailyLogView{}, ctx.Err()
				}
			}
			return timeline.DailyLogView{Resolution: resolution}, nil
		},
	}
	slotA := service.NewViewLoader(builder)
	slotB := service.NewViewLoader(builder)

	var wg sync.WaitGroup
	wg.Add(1)
	var viewA timeline.DailyLogView
	var errA error
	go func() {
		defer wg.Done()
		viewA, errA = slotA.Load(context.Background(), uuid.New(), 24)
	}()

	<-firstStarted

	viewB, errB := slotB.Load(context.Background(), uuid.New(), 48)
	require.NoError(t, errB)
	assert.Equal(t, 48, viewB.Resolution)

	close(release)
	wg.Wait()

	require.NoError(t, errA)
	assert.Equal(t, 24, viewA.Resolution)
}

func TestViewLoader_StaleSuccessIsDiscarded(t *testing.T) {
	// The first builder call succeeds, but only after the second load has
	// already been issued: last-request-wins is decided by sequence, not by
	// whichever response happens to arrive.
	var calls atomic.Int32
	secondDone := make(chan struct{})

	loader := service.NewViewLoader(&mockViewBuilder{
		build: func(ctx context.Context, _ uuid.UUID, resolution int) (timeline.DailyLogView, error) {
			if calls.Add(1) == 1 {
				<-secondDone
				// Ignore the cancellation and "succeed" late anyway.
				return timeline.DailyLogView{Resolution: resolution}, nil
			}
			return timeline.DailyLogView{Resolution: resolution}, nil
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstView timeline.DailyLogView
	var firstErr error
	go func() {
		defer wg.Done()
		firstView, firstErr = loader.Load(context.Background(), uuid.New(), 24)
	}()

	// Give the first goroutine a moment to enter the builder.
	time.Sleep(10 * time.Millisecond)

	_, err := loader.Load(context.Background(), uuid.New(), 48)
	require.NoError(t, err)
	close(secondDone)
	wg.Wait()

	assert.ErrorIs(t, firstErr, service.ErrStaleLoad)
	assert.Zero(t, firstView)
}
