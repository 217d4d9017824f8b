// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bst"
	"github.com/katalvlaran/algoviz/geom"
	"github.com/katalvlaran/algoviz/rbtree"
)

// searchTree is what the tree command needs from either engine.
type searchTree interface {
	Insert(ctx context.Context, v int) error
	Delete(ctx context.Context, v int) error
	Traverse(ctx context.Context, order bst.Order) ([]int, error)
	Height() int
	Len() int
	String() string
}

// treeRow is one node of either engine, flattened for the table.
type treeRow struct {
	id          uuid.UUID
	value       int
	color       string
	left, right uuid.UUID
	pos         geom.Vec3
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		kind    string
		deletes []int
	)
	cmd := &cobra.Command{
		Use:   "tree [values...]",
		Short: "Insert values into a search tree and print its layout and traversals",
		Example: `  algoviz tree 5 3 8 1 4
  algoviz tree --kind rb --delete 20 10 20 30 15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]int, len(args))
			for i, s := range args {
				v, err := strconv.Atoi(s)
				if err != nil {
					return errors.WithHint(errors.Wrapf(err, "value %d", i+1), "values are integers")
				}
				values[i] = v
			}
			return printTree(cmd.Context(), cmd.OutOrStdout(), a.log, kind, values, deletes)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "bst", "bst or rb")
	cmd.Flags().IntSliceVar(&deletes, "delete", nil, "values to delete after inserting")
	return cmd
}

func printTree(ctx context.Context, w io.Writer, log *zap.Logger, kind string, values, deletes []int) error {
	pacer := anim.NewPacer(anim.WithSleep(anim.Instant))
	var (
		t    searchTree
		rows func() []treeRow
		rb   *rbtree.Tree
	)
	switch strings.ToLower(kind) {
	case "bst":
		b := bst.New(bst.WithPacer(pacer), bst.WithLogger(log))
		t, rows = b, func() []treeRow { return bstRows(b.Snapshot()) }
	case "rb", "rbtree", "red-black":
		rb = rbtree.New(rbtree.WithPacer(pacer), rbtree.WithLogger(log))
		t, rows = rb, func() []treeRow { return rbRows(rb.Snapshot()) }
	default:
		return errors.WithHint(errors.Newf("unknown tree kind %q", kind), "use --kind bst or --kind rb")
	}

	for _, v := range values {
		if err := t.Insert(ctx, v); err != nil {
			log.Warn("insert skipped", zap.Int("value", v), zap.Error(err))
		}
	}
	for _, v := range deletes {
		if err := t.Delete(ctx, v); err != nil {
			log.Warn("delete skipped", zap.Int("value", v), zap.Error(err))
		}
	}

	fmt.Fprintf(w, "%d nodes, height %d", t.Len(), t.Height())
	if rb != nil {
		fmt.Fprintf(w, ", black-height %d", rb.BlackHeight())
	}
	fmt.Fprintf(w, "\n\n%s\n", t.String())

	renderNodes(w, rows(), rb != nil)
	fmt.Fprintln(w)

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Order", "Values"})
	tbl.SetAutoWrapText(false)
	for _, o := range []bst.Order{bst.Preorder, bst.Inorder, bst.Postorder} {
		vals, err := t.Traverse(ctx, o)
		if err != nil {
			return err
		}
		tbl.Append([]string{o.String(), joinInts(vals)})
	}
	tbl.Render()
	return nil
}

func renderNodes(w io.Writer, rows []treeRow, colored bool) {
	value := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		value[r.id] = r.value
	}
	child := func(id uuid.UUID) string {
		if id == uuid.Nil {
			return "-"
		}
		return strconv.Itoa(value[id])
	}

	header := []string{"Value", "Left", "Right", "X", "Y"}
	if colored {
		header = append(header, "Color")
	}
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(header)
	for _, r := range rows {
		line := []string{
			strconv.Itoa(r.value), child(r.left), child(r.right),
			strconv.FormatFloat(r.pos.X, 'f', 1, 64), strconv.FormatFloat(r.pos.Y, 'f', 1, 64),
		}
		if colored {
			line = append(line, r.color)
		}
		tbl.Append(line)
	}
	tbl.Render()
}

func bstRows(s bst.Snapshot) []treeRow {
	rows := make([]treeRow, len(s.Nodes))
	for i, n := range s.Nodes {
		rows[i] = treeRow{id: n.ID, value: n.Value, left: n.Left, right: n.Right, pos: n.Position}
	}
	return rows
}

func rbRows(s rbtree.Snapshot) []treeRow {
	rows := make([]treeRow, len(s.Nodes))
	for i, n := range s.Nodes {
		rows[i] = treeRow{id: n.ID, value: n.Value, color: n.Color, left: n.Left, right: n.Right, pos: n.Position}
	}
	return rows
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
