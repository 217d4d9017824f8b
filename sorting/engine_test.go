package sorting_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/sorting"
)

func newEngine() (*sorting.Engine, *anim.Recorder) {
	rec := &anim.Recorder{}
	return sorting.New(
		sorting.WithPacer(anim.NewPacer(anim.WithSleep(anim.Instant))),
		sorting.WithSink(rec),
		sorting.WithStepFrames(2),
	), rec
}

func TestEngine_LoadValidation(t *testing.T) {
	e, rec := newEngine()

	err := e.Load(make([]int, sorting.MaxElements+1))
	assert.True(t, errors.Is(err, sorting.ErrTooMany))

	err = e.Load([]int{5, 0, 7})
	assert.True(t, errors.Is(err, sorting.ErrValueRange))
	err = e.Load([]int{sorting.MaxValue + 1})
	assert.True(t, errors.Is(err, sorting.ErrValueRange))

	require.Len(t, rec.Notices(), 3)
	for _, n := range rec.Notices() {
		assert.NotEmpty(t, n.Hint)
	}
	assert.Empty(t, e.Values(), "rejected loads change nothing")

	require.NoError(t, e.Load([]int{sorting.MinValue, sorting.MaxValue}))
	assert.Equal(t, []int{1, 100}, e.Values())
}

func TestEngine_SortsWithEveryAlgorithm(t *testing.T) {
	for _, alg := range sorting.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			e, rec := newEngine()
			require.NoError(t, e.Randomize(12, 3))
			want := slices.Clone(e.Values())
			slices.Sort(want)

			require.NoError(t, e.Start(context.Background(), alg))
			assert.Equal(t, want, e.Values())

			snap := e.Snapshot()
			assert.Equal(t, alg, snap.Algorithm)
			assert.Equal(t, snap.Steps, snap.Step)
			assert.False(t, snap.Animating)
			for _, el := range snap.Elements {
				assert.True(t, el.Sorted)
			}
			last := rec.Frames()[len(rec.Frames())-1]
			assert.Equal(t, sorting.Topic, last.Topic)
			assert.False(t, last.Snapshot.(sorting.Snapshot).Animating)

			// Sorting again leaves the array as it is.
			require.NoError(t, e.Start(context.Background(), alg))
			assert.Equal(t, want, e.Values())
		})
	}
}

func TestEngine_BubbleOnSortedInputWritesNothing(t *testing.T) {
	e, _ := newEngine()
	require.NoError(t, e.Load([]int{1, 2, 3, 4}))
	require.NoError(t, e.Start(context.Background(), sorting.Bubble))
	assert.Zero(t, e.Snapshot().Writes)
	assert.Equal(t, 3, e.Snapshot().Comparisons)
}

func TestEngine_TinyArrays(t *testing.T) {
	e, _ := newEngine()
	require.NoError(t, e.Start(context.Background(), sorting.Quick))
	assert.Empty(t, e.Values())

	require.NoError(t, e.Load([]int{9}))
	require.NoError(t, e.Start(context.Background(), sorting.Merge))
	snap := e.Snapshot()
	assert.Zero(t, snap.Steps)
	assert.True(t, snap.Elements[0].Sorted)
}

func TestEngine_UnknownAlgorithm(t *testing.T) {
	e, rec := newEngine()
	require.NoError(t, e.Load([]int{2, 1}))
	err := e.Start(context.Background(), "bogo")
	assert.True(t, errors.Is(err, sorting.ErrUnknownAlgorithm))
	assert.Len(t, rec.Notices(), 1)
	assert.Equal(t, []int{2, 1}, e.Values())
}

func TestEngine_BusyAndCancel(t *testing.T) {
	e, rec := newEngine()
	require.NoError(t, e.Load([]int{5, 4, 3, 2, 1}))
	e.Pacer().Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Start(ctx, sorting.Bubble) }()
	require.Eventually(t, func() bool { return e.Snapshot().Status.Text != "" }, time.Second, time.Millisecond)
	assert.True(t, e.Animating())

	assert.ErrorIs(t, e.Load([]int{1}), anim.ErrBusy)
	assert.ErrorIs(t, e.Reset(), anim.ErrBusy)
	assert.ErrorIs(t, e.Start(context.Background(), sorting.Quick), anim.ErrBusy)
	assert.Len(t, rec.Notices(), 3)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sort ignored cancellation")
	}
	assert.False(t, e.Animating())
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, e.Values())
}

func TestEngine_ResetRestoresLoadedOrder(t *testing.T) {
	e, _ := newEngine()
	require.NoError(t, e.Load([]int{3, 1, 2}))
	ids := e.Snapshot().Elements
	require.NoError(t, e.Start(context.Background(), sorting.Insertion))
	require.NoError(t, e.Reset())

	snap := e.Snapshot()
	assert.Equal(t, []int{3, 1, 2}, e.Values())
	for i, el := range snap.Elements {
		assert.Equal(t, ids[i].ID, el.ID, "ids survive a reset")
		assert.False(t, el.Sorted)
	}
	assert.Zero(t, snap.Steps)
}
