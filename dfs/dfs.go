// Package dfs implements depth‑first search (single‑source and forest) on core.Graph.
// It honors the graph's directed flag, cancellation, enter/exit and
// tree-edge/backtrack hooks, depth and neighbor limits, full‑graph traversal,
// and diagnostics.
//
// Complexity:
//
//   - Time:   O(V + E) for traversal, plus overhead of hooks and filters.
//   - Memory: O(V) for recursion stack and metadata maps.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - ErrStartVertexNotFound    if startID is missing.
//   - context.Canceled          if ctx is done.
//   - any error returned by a hook, unchanged.
package dfs

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth‑first search on graph g. If opts include WithFullTraversal,
// it covers all disconnected components; otherwise, it starts only from startID.
// The partial result is returned alongside a non-nil error.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	if !dopts.FullTraversal && !g.HasNode(startID) {
		return nil, errors.Wrapf(ErrStartVertexNotFound, "%q", startID)
	}

	nodes := g.Nodes()
	res := &DFSResult{
		Order:    make([]string, 0, len(nodes)),
		Preorder: make([]string, 0, len(nodes)),
		Depth:    make(map[string]int, len(nodes)),
		Parent:   make(map[string]string, len(nodes)),
		Visited:  make(map[string]bool, len(nodes)),
	}
	w := &dfsWalker{graph: g, opts: dopts, res: res}

	if !dopts.FullTraversal {
		return res, w.traverse(startID, 0)
	}
	for _, n := range nodes {
		if !res.Visited[n.ID] {
			if err := w.traverse(n.ID, 0); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// traverse visits vertex id at the given depth, recursing to neighbors.
func (w *dfsWalker) traverse(id string, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth
	w.res.Preorder = append(w.res.Preorder, id)
	if w.opts.OnEnter != nil {
		if err := w.opts.OnEnter(id, depth); err != nil {
			return err
		}
	}

	nbs, err := w.graph.Neighbors(id)
	if err != nil {
		return errors.Wrapf(err, "dfs: neighbors of %q", id)
	}
	for _, nb := range nbs {
		if w.res.Visited[nb.NodeID] {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nb.NodeID) {
			w.res.SkippedNeighbors++
			continue
		}
		if w.opts.MaxDepth >= 0 && depth+1 > w.opts.MaxDepth {
			continue
		}
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}
		if w.opts.OnTreeEdge != nil {
			if err := w.opts.OnTreeEdge(id, nb.NodeID, nb.EdgeID, depth+1); err != nil {
				return err
			}
		}
		w.res.Parent[nb.NodeID] = id
		if err := w.traverse(nb.NodeID, depth+1); err != nil {
			return err
		}
		if w.opts.OnBacktrack != nil {
			if err := w.opts.OnBacktrack(id, nb.NodeID, nb.EdgeID); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id, depth); err != nil {
			return err
		}
	}
	w.res.Order = append(w.res.Order, id)
	return nil
}
