package dfs_test

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/dfs"
)

func TestTopo_Errors(t *testing.T) {
	_, err := dfs.TopologicalSort(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	_, err = dfs.TopologicalSort(core.NewGraph())
	assert.ErrorIs(t, err, dfs.ErrUndirected)
}

func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(core.NewGraph(core.WithDirected(true)))
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestTopo_EdgesPointForward(t *testing.T) {
	g := build(t, 6, true, [2]int{5, 3}, [2]int{1, 2}, [2]int{2, 3}, [2]int{4, 2}, [2]int{3, 6})
	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	require.Len(t, order, 6)
	for _, e := range g.Edges() {
		assert.Less(t, slices.Index(order, e.From), slices.Index(order, e.To), "%s->%s", e.From, e.To)
	}
}

func TestTopo_Cycle(t *testing.T) {
	g := build(t, 3, true, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1})
	_, err := dfs.TopologicalSort(g)
	assert.True(t, errors.Is(err, dfs.ErrCycleDetected))
}
