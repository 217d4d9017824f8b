// SPDX-License-Identifier: MIT

package core_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/geom"
)

// triangle returns an undirected graph n1-n2, n2-n3, n1-n3.
func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	a := g.AddNode(1, geom.Vec3{})
	b := g.AddNode(2, geom.Vec3{X: 1})
	c := g.AddNode(3, geom.Vec3{X: 2})
	for _, p := range [][2]string{{a, b}, {b, c}, {a, c}} {
		_, err := g.AddEdge(p[0], p[1])
		require.NoError(t, err)
	}
	return g
}

func TestGraph_IDsAreSequentialAndNeverReused(t *testing.T) {
	g := core.NewGraph()
	assert.Equal(t, "n1", g.AddNode(0, geom.Vec3{}))
	assert.Equal(t, "n2", g.AddNode(0, geom.Vec3{}))
	require.NoError(t, g.RemoveNode("n2"))
	assert.Equal(t, "n3", g.AddNode(0, geom.Vec3{}))

	eid, err := g.AddEdge("n1", "n3")
	require.NoError(t, err)
	assert.Equal(t, "e1", eid)
}

func TestGraph_AddEdgeValidation(t *testing.T) {
	g := core.NewGraph()
	a := g.AddNode(1, geom.Vec3{})
	b := g.AddNode(2, geom.Vec3{})

	_, err := g.AddEdge(a, "n42")
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))

	_, err = g.AddEdge(a, a)
	assert.True(t, errors.Is(err, core.ErrSelfLoop))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = g.AddEdge(a, b)
	require.NoError(t, err)
	_, err = g.AddEdge(a, b)
	assert.True(t, errors.Is(err, core.ErrDuplicateEdge))
	// undirected: the reverse orientation is the same edge
	_, err = g.AddEdge(b, a)
	assert.True(t, errors.Is(err, core.ErrDuplicateEdge))

	require.NoError(t, g.SetDirected(true))
	_, err = g.AddEdge(b, a)
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestGraph_NeighborsHonorDirectedFlag(t *testing.T) {
	g := core.NewGraph()
	a := g.AddNode(1, geom.Vec3{})
	b := g.AddNode(2, geom.Vec3{})
	c := g.AddNode(3, geom.Vec3{})
	_, err := g.AddEdge(a, c)
	require.NoError(t, err)
	_, err = g.AddEdge(b, a)
	require.NoError(t, err)

	ids, err := g.NeighborIDs(a)
	require.NoError(t, err)
	assert.Equal(t, []string{c, b}, ids, "creation order")

	require.NoError(t, g.SetDirected(true))
	ids, err = g.NeighborIDs(a)
	require.NoError(t, err)
	assert.Equal(t, []string{c}, ids)
	ids, err = g.NeighborIDs(b)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, ids)
	assert.True(t, g.HasEdge(b, a))
	assert.False(t, g.HasEdge(a, b))

	_, err = g.Neighbors("n9")
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
}

func TestGraph_UndirectRefusesAntiparallelPair(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	a := g.AddNode(1, geom.Vec3{})
	b := g.AddNode(2, geom.Vec3{})
	ab, err := g.AddEdge(a, b)
	require.NoError(t, err)
	ba, err := g.AddEdge(b, a)
	require.NoError(t, err)

	err = g.SetDirected(false)
	require.True(t, errors.Is(err, core.ErrDuplicateEdge))
	assert.Contains(t, err.Error(), ab)
	assert.Contains(t, strings.Join(errors.GetAllHints(err), " "), ba)
	assert.True(t, g.Directed())
	assert.Equal(t, 2, g.EdgeCount())

	require.NoError(t, g.RemoveEdge(ba))
	require.NoError(t, g.SetDirected(false))
	assert.False(t, g.Directed())
	ids, err := g.NeighborIDs(b)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, ids)
	ids, err = g.NeighborIDs(a)
	require.NoError(t, err)
	assert.Equal(t, []string{b}, ids)
}

func TestGraph_RemoveNodeDropsIncidentEdges(t *testing.T) {
	g := triangle(t)
	require.NoError(t, g.RemoveNode("n2"))
	assert.Equal(t, 2, g.NodeCount())
	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "e3", edges[0].ID)

	d, err := g.Degree("n1")
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	assert.True(t, errors.Is(g.RemoveNode("n2"), core.ErrNodeNotFound))
	assert.True(t, errors.Is(g.RemoveEdge("e1"), core.ErrEdgeNotFound))
}

func TestGraph_StatesAndReset(t *testing.T) {
	g := triangle(t)
	require.NoError(t, g.SetNodeState("n1", core.NodeVisited))
	require.NoError(t, g.SetEdgeState("e2", core.EdgeTraversed))
	assert.True(t, errors.Is(g.SetNodeState("n7", core.NodeVisited), core.ErrNodeNotFound))
	assert.True(t, errors.Is(g.SetEdgeState("e7", core.EdgeTraversed), core.ErrEdgeNotFound))

	n, err := g.Node("n1")
	require.NoError(t, err)
	assert.Equal(t, core.NodeVisited, n.State)

	g.ResetStates()
	for _, n := range g.Nodes() {
		assert.Equal(t, core.NodeNormal, n.State)
	}
	for _, e := range g.Edges() {
		assert.Equal(t, core.EdgeNormal, e.State)
	}
}

func TestGraph_MoveAndValue(t *testing.T) {
	g := triangle(t)
	require.NoError(t, g.MoveNode("n3", geom.Vec3{X: 5, Y: 1}))
	require.NoError(t, g.SetNodeValue("n3", 30))
	n, err := g.Node("n3")
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 5, Y: 1}, n.Position)
	assert.Equal(t, 30, n.Value)
	assert.True(t, errors.Is(g.MoveNode("nx", geom.Vec3{}), core.ErrNodeNotFound))
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := triangle(t)
	c := g.Clone()
	require.NoError(t, c.RemoveEdge("e1"))
	require.NoError(t, c.SetNodeState("n1", core.NodeCurrent))
	assert.Equal(t, 3, g.EdgeCount())
	n, _ := g.Node("n1")
	assert.Equal(t, core.NodeNormal, n.State)
	assert.Equal(t, "n4", c.AddNode(0, geom.Vec3{}))

	g.Clear()
	assert.Zero(t, g.NodeCount())
	assert.Equal(t, "n1", g.AddNode(0, geom.Vec3{}))
}

func TestGraph_ConcurrentReaders(t *testing.T) {
	g := triangle(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = g.Nodes()
				_, _ = g.Neighbors("n1")
			}
		}()
	}
	for j := 0; j < 100; j++ {
		_ = g.SetNodeState("n2", core.NodeVisited)
		g.ResetStates()
	}
	wg.Wait()
}
