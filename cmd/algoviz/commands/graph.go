// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/algoviz/bfs"
	"github.com/katalvlaran/algoviz/builder"
	"github.com/katalvlaran/algoviz/core"
	"github.com/katalvlaran/algoviz/dfs"
)

type graphOptions struct {
	preset   string
	size     int
	seed     int64
	start    string
	directed bool
}

func newGraphCmd(*app) *cobra.Command {
	var o graphOptions
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build a preset graph and print its BFS and DFS traversals",
		Example: `  algoviz graph --preset grid -n 9
  algoviz graph --preset random -n 8 --seed 4 --directed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printGraph(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.preset, "preset", "cycle", "one of: "+strings.Join(builder.PresetNames(), ", "))
	f.IntVarP(&o.size, "nodes", "n", 6, "approximate number of nodes")
	f.Int64Var(&o.seed, "seed", 1, "seed for the random preset")
	f.StringVar(&o.start, "start", "", "start node (default: the first node)")
	f.BoolVar(&o.directed, "directed", false, "treat edges as one-way")
	return cmd
}

func printGraph(w io.Writer, o graphOptions) error {
	cons, err := builder.Preset(o.preset, o.size)
	if err != nil {
		return err
	}
	g, err := builder.BuildGraph(
		[]core.GraphOption{core.WithDirected(o.directed)},
		[]builder.BuilderOption{builder.WithSeed(o.seed)},
		cons,
	)
	if err != nil {
		return err
	}
	nodes := g.Nodes()
	if len(nodes) == 0 {
		_, err := fmt.Fprintln(w, "empty graph")
		return err
	}
	start := o.start
	if start == "" {
		start = nodes[0].ID
	}

	b, err := bfs.BFS(g, start)
	if err != nil {
		return errors.WithHint(err, "pick a start node such as "+nodes[0].ID)
	}
	d, err := dfs.DFS(g, start)
	if err != nil {
		return err
	}
	pre := positions(d.Preorder)
	post := positions(d.Order)

	kind := "undirected"
	if g.Directed() {
		kind = "directed"
	}
	fmt.Fprintf(w, "%s %s graph: %d nodes, %d edges, start %s\n\n", kind, o.preset, g.NodeCount(), g.EdgeCount(), start)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Node", "Value", "Neighbors", "BFS depth", "BFS parent", "DFS pre", "DFS post"})
	tbl.SetAutoWrapText(false)
	for _, n := range nodes {
		nbs, err := g.NeighborIDs(n.ID)
		if err != nil {
			return err
		}
		depth, parent := "-", "-"
		if dist, ok := b.Depth[n.ID]; ok {
			depth = strconv.Itoa(dist)
			if p, ok := b.Parent[n.ID]; ok {
				parent = p
			}
		}
		tbl.Append([]string{
			n.ID, strconv.Itoa(n.Value), strings.Join(nbs, " "),
			depth, parent, orDash(pre, n.ID), orDash(post, n.ID),
		})
	}
	tbl.Render()

	fmt.Fprintf(w, "\nbfs: %s\n", strings.Join(b.Order, " "))
	fmt.Fprintf(w, "dfs: %s\n", strings.Join(d.Preorder, " "))
	if g.Directed() {
		order, err := dfs.TopologicalSort(g)
		switch {
		case errors.Is(err, dfs.ErrCycleDetected):
			fmt.Fprintln(w, "topological: cyclic")
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "topological: %s\n", strings.Join(order, " "))
		}
	}
	return nil
}

// positions maps each id to its 1-based index in order.
func positions(order []string) map[string]string {
	m := make(map[string]string, len(order))
	for i, id := range order {
		m[id] = strconv.Itoa(i + 1)
	}
	return m
}

func orDash(m map[string]string, id string) string {
	if s, ok := m[id]; ok {
		return s
	}
	return "-"
}
