package explorer_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bfs"
	"github.com/katalvlaran/algoviz/builder"
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/explorer"
	"github.com/katalvlaran/algoviz/geom"
)

func newExplorer(t *testing.T, c builder.Constructor, sink anim.Sink) *explorer.Explorer {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, c)
	require.NoError(t, err)
	return explorer.New(
		explorer.WithGraph(g),
		explorer.WithSink(sink),
		explorer.WithPacer(anim.NewPacer(anim.WithSleep(anim.Instant))),
	)
}

func states(s explorer.Snapshot) map[string]core.NodeState {
	out := make(map[string]core.NodeState, len(s.Nodes))
	for _, n := range s.Nodes {
		out[n.ID] = n.State
	}
	return out
}

func frames(rec *anim.Recorder) []explorer.Snapshot {
	var out []explorer.Snapshot
	for _, f := range rec.Frames() {
		out = append(out, f.Snapshot.(explorer.Snapshot))
	}
	return out
}

func TestStartBFS(t *testing.T) {
	rec := &anim.Recorder{}
	e := newExplorer(t, builder.Star(4), rec)
	require.NoError(t, e.StartBFS(context.Background(), "n1"))

	snap := e.Snapshot()
	assert.Equal(t, explorer.ModeBFS, snap.Mode)
	assert.Equal(t, []string{"n1", "n2", "n3", "n4"}, snap.Visited)
	assert.Empty(t, snap.Queue)
	assert.False(t, snap.Animating)
	assert.Equal(t, "bfs finished: visited 4 nodes", snap.Status.Text)
	for id, st := range states(snap) {
		assert.Equal(t, core.NodeVisited, st, id)
	}
	for _, ed := range snap.Edges {
		assert.Equal(t, core.EdgeHighlighted, ed.State, ed.ID)
	}

	var sawQueue bool
	for _, f := range frames(rec) {
		if f.Status.Text == "enqueue n3 from n1" {
			sawQueue = true
			assert.Equal(t, []string{"n2", "n3"}, f.Queue)
			assert.Equal(t, core.NodeQueued, states(f)["n3"])
			assert.True(t, f.Animating)
		}
	}
	assert.True(t, sawQueue)
}

func TestStartDFS_History(t *testing.T) {
	e := newExplorer(t, builder.Path(3), nil)
	require.NoError(t, e.StartDFS(context.Background(), "n1"))

	snap := e.Snapshot()
	assert.Equal(t, []explorer.Step{
		{Kind: explorer.StepEnter, NodeID: "n1", Depth: 0},
		{Kind: explorer.StepEnter, NodeID: "n2", Depth: 1},
		{Kind: explorer.StepEnter, NodeID: "n3", Depth: 2},
		{Kind: explorer.StepExit, NodeID: "n3", Depth: 2},
		{Kind: explorer.StepExit, NodeID: "n2", Depth: 1},
		{Kind: explorer.StepExit, NodeID: "n1", Depth: 0},
	}, snap.History)
	assert.Empty(t, snap.Stack)
	for id, st := range states(snap) {
		assert.Equal(t, core.NodeCompleted, st, id)
	}
	for _, ed := range snap.Edges {
		assert.Equal(t, core.EdgeTraversed, ed.State, ed.ID)
	}
}

func TestStartDFS_StackFeed(t *testing.T) {
	rec := &anim.Recorder{}
	e := newExplorer(t, builder.Path(3), rec)
	require.NoError(t, e.StartDFS(context.Background(), "n1"))
	var deepest []string
	for _, f := range frames(rec) {
		if len(f.Stack) > len(deepest) {
			deepest = f.Stack
		}
	}
	assert.Equal(t, []string{"n1", "n2", "n3"}, deepest)
}

// stopOnCaption stops the explorer the first time a caption starts with prefix.
type stopOnCaption struct {
	*anim.Recorder
	e      *explorer.Explorer
	prefix string
	done   bool
}

func (s *stopOnCaption) Frame(topic string, snap any) {
	s.Recorder.Frame(topic, snap)
	if !s.done && strings.HasPrefix(snap.(explorer.Snapshot).Status.Text, s.prefix) {
		s.done = true
		s.e.Stop()
	}
}

func TestStop_MarksPendingCompleted(t *testing.T) {
	sink := &stopOnCaption{Recorder: &anim.Recorder{}, prefix: "enqueue n3"}
	sink.e = newExplorer(t, builder.Star(4), sink)

	err := sink.e.StartBFS(context.Background(), "n1")
	assert.ErrorIs(t, err, context.Canceled)

	snap := sink.e.Snapshot()
	st := states(snap)
	assert.Equal(t, core.NodeCompleted, st["n2"])
	assert.Equal(t, core.NodeCompleted, st["n3"])
	assert.Equal(t, core.NodeNormal, st["n4"])
	assert.Equal(t, "bfs stopped after 1 nodes", snap.Status.Text)
	assert.False(t, snap.Animating)
	assert.Empty(t, sink.Notices(), "a stop is not a rejection")
}

// holdAt pauses the pacer when a frame carries the given status text.
type holdAt struct {
	text  string
	pacer *anim.Pacer
	hit   chan struct{}
	once  sync.Once
}

func (h *holdAt) Frame(_ string, snapshot any) {
	if snapshot.(explorer.Snapshot).Status.Text == h.text {
		h.once.Do(func() {
			h.pacer.Pause()
			close(h.hit)
		})
	}
}

func (h *holdAt) Notice(string, anim.Notice) {}

func TestStartBFS_StateErrorAbortsTraversal(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Star(4))
	require.NoError(t, err)
	pacer := anim.NewPacer(anim.WithSleep(anim.Instant))
	hold := &holdAt{text: "enqueue n2 from n1", pacer: pacer, hit: make(chan struct{})}
	e := explorer.New(explorer.WithGraph(g), explorer.WithSink(hold), explorer.WithPacer(pacer))

	done := make(chan error, 1)
	go func() { done <- e.StartBFS(context.Background(), "n1") }()
	select {
	case <-hold.hit:
	case <-time.After(2 * time.Second):
		t.Fatal("traversal never reached n2")
	}
	// n3 is already in the neighbor list being expanded.
	require.NoError(t, g.RemoveNode("n3"))
	pacer.Resume()

	select {
	case err = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("traversal did not return")
	}
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
	assert.False(t, errors.Is(err, bfs.ErrNeighbors))
	assert.Equal(t, []string{"n1"}, e.Snapshot().Visited)
}

func TestBusyRejectsMutations(t *testing.T) {
	rec := &anim.Recorder{}
	e := newExplorer(t, builder.Path(3), rec)
	e.Pacer().Pause()

	done := make(chan error, 1)
	go func() { done <- e.StartBFS(context.Background(), "n1") }()
	// The first caption is set just before the first pause.
	require.Eventually(t, func() bool { return e.Snapshot().Status.Text != "" }, time.Second, time.Millisecond)
	assert.True(t, e.Animating())

	_, err := e.AddNode(7, geom.Vec3{})
	assert.ErrorIs(t, err, anim.ErrBusy)
	assert.ErrorIs(t, e.StartDFS(context.Background(), "n1"), anim.ErrBusy)
	assert.ErrorIs(t, e.SetDirected(true), anim.ErrBusy)
	assert.Len(t, rec.Notices(), 3)

	assert.True(t, e.Stop())
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("traversal ignored Stop")
	}
	assert.False(t, e.Stop())
	assert.Equal(t, 3, e.Graph().NodeCount())
}

func TestStart_UnknownNode(t *testing.T) {
	rec := &anim.Recorder{}
	e := newExplorer(t, builder.Path(2), rec)
	err := e.StartBFS(context.Background(), "n9")
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
	require.Len(t, rec.Notices(), 1)
	assert.NotEmpty(t, rec.Notices()[0].Hint)
	assert.False(t, e.Animating())
}

func TestMutations(t *testing.T) {
	rec := &anim.Recorder{}
	e := explorer.New(explorer.WithSink(rec))
	a, err := e.AddNode(1, geom.Vec3{})
	require.NoError(t, err)
	b, err := e.AddNode(2, geom.Vec3{X: 3})
	require.NoError(t, err)

	eid, err := e.AddEdge(a, b)
	require.NoError(t, err)
	_, err = e.AddEdge(b, a)
	assert.ErrorIs(t, err, core.ErrDuplicateEdge)
	_, err = e.AddEdge(a, a)
	assert.ErrorIs(t, err, core.ErrSelfLoop)
	assert.Len(t, rec.Notices(), 2)

	require.NoError(t, e.SetDirected(true))
	_, err = e.AddEdge(b, a)
	require.NoError(t, err)
	assert.True(t, e.Snapshot().Directed)

	require.NoError(t, e.MoveNode(a, geom.Vec3{Y: 1}))
	require.NoError(t, e.RemoveEdge(eid))
	require.NoError(t, e.RemoveNode(b))
	assert.Empty(t, e.Snapshot().Edges)

	require.NoError(t, e.Clear())
	assert.Empty(t, e.Snapshot().Nodes)
}

func TestLoadPreset(t *testing.T) {
	e := explorer.New()
	require.NoError(t, e.SetDirected(true))
	require.NoError(t, e.LoadPreset("grid", 4, 1))
	snap := e.Snapshot()
	assert.Len(t, snap.Nodes, 4)
	assert.Len(t, snap.Edges, 4)
	assert.True(t, snap.Directed)

	assert.True(t, errors.Is(e.LoadPreset("hexagon", 4, 1), builder.ErrUnknownPreset))
	assert.Len(t, e.Snapshot().Nodes, 4, "a failed preset keeps the old graph")

	require.NoError(t, e.StartBFS(context.Background(), "n1"))
	require.NoError(t, e.Reset())
	snap = e.Snapshot()
	assert.Empty(t, snap.Visited)
	assert.Equal(t, core.NodeNormal, states(snap)["n1"])
}
