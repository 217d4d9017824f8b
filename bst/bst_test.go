package bst_test

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bst"
)

func newTree(opts ...bst.Option) (*bst.Tree, *anim.Recorder) {
	rec := &anim.Recorder{}
	base := []bst.Option{
		bst.WithPacer(anim.NewPacer(anim.WithSleep(anim.Instant))),
		bst.WithSink(rec),
	}
	return bst.New(append(base, opts...)...), rec
}

func TestTreeScript(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	datadriven.RunTest(t, "testdata/tree", func(t *testing.T, d *datadriven.TestData) string {
		var out strings.Builder
		values := func() []int {
			var vs []int
			for _, f := range strings.Fields(d.Input) {
				v, err := strconv.Atoi(f)
				require.NoError(t, err)
				vs = append(vs, v)
			}
			return vs
		}
		switch d.Cmd {
		case "insert":
			for _, v := range values() {
				if err := tree.Insert(ctx, v); errors.Is(err, bst.ErrDuplicate) {
					fmt.Fprintf(&out, "duplicate %d\n", v)
				} else {
					require.NoError(t, err)
				}
			}
			require.NoError(t, tree.Check())
			out.WriteString(tree.String())
		case "delete":
			for _, v := range values() {
				if err := tree.Delete(ctx, v); errors.Is(err, bst.ErrNotFound) {
					fmt.Fprintf(&out, "not found %d\n", v)
				} else {
					require.NoError(t, err)
				}
			}
			require.NoError(t, tree.Check())
			out.WriteString(tree.String())
		case "search":
			for _, v := range values() {
				found, err := tree.Search(ctx, v)
				require.NoError(t, err)
				if found {
					fmt.Fprintf(&out, "%d found\n", v)
				} else {
					fmt.Fprintf(&out, "%d not found\n", v)
				}
			}
		case "traverse":
			var name string
			d.ScanArgs(t, "order", &name)
			order, err := bst.ParseOrder(name)
			require.NoError(t, err)
			got, err := tree.Traverse(ctx, order)
			require.NoError(t, err)
			strs := make([]string, len(got))
			for i, v := range got {
				strs[i] = strconv.Itoa(v)
			}
			out.WriteString(strings.Join(strs, " "))
		default:
			t.Fatalf("unknown command %q", d.Cmd)
		}
		return out.String()
	})
}

func TestTree_Traversals(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for _, v := range []int{5, 3, 8, 1, 4} {
		require.NoError(t, tree.Insert(ctx, v))
	}

	in, err := tree.Traverse(ctx, bst.Inorder)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5, 8}, in)

	pre, err := tree.Traverse(ctx, bst.Preorder)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 1, 4, 8}, pre)

	post, err := tree.Traverse(ctx, bst.Postorder)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 3, 8, 5}, post)

	// the last result stays visible after the walk
	assert.Equal(t, post, tree.Snapshot().Traversal)
}

func TestTree_TraversalIsIncremental(t *testing.T) {
	ctx := context.Background()
	tree, rec := newTree()
	for _, v := range []int{2, 1, 3} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	before := len(rec.Frames())
	_, err := tree.Traverse(ctx, bst.Inorder)
	require.NoError(t, err)

	var lengths []int
	for _, f := range rec.Frames()[before:] {
		snap := f.Snapshot.(bst.Snapshot)
		if n := len(snap.Traversal); len(lengths) == 0 || lengths[len(lengths)-1] != n {
			lengths = append(lengths, n)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, lengths)
}

func TestTree_OrderingInvariantRandomized(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewSource(7))
	tree, _ := newTree()
	present := map[int]bool{}
	for i := 0; i < 300; i++ {
		v := r.Intn(50)
		if r.Intn(3) == 0 {
			err := tree.Delete(ctx, v)
			if present[v] {
				require.NoError(t, err)
				delete(present, v)
			} else {
				require.True(t, errors.Is(err, bst.ErrNotFound))
			}
		} else {
			err := tree.Insert(ctx, v)
			if present[v] {
				require.True(t, errors.Is(err, bst.ErrDuplicate))
			} else {
				require.NoError(t, err)
				present[v] = true
			}
		}
		require.NoError(t, tree.Check())
		require.Equal(t, len(present), tree.Len())
	}
}

func TestTree_LayoutIsTopDown(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for _, v := range []int{10, 5, 15, 2} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	pos := map[int]float64{}
	ys := map[int]float64{}
	for _, n := range tree.Snapshot().Nodes {
		pos[n.Value] = n.Position.X
		ys[n.Value] = n.Position.Y
	}
	assert.Equal(t, 0.0, pos[10])
	assert.Less(t, pos[5], pos[10])
	assert.Greater(t, pos[15], pos[10])
	assert.Less(t, pos[2], pos[5])
	assert.Greater(t, ys[10], ys[5])
	assert.Equal(t, ys[5], ys[15])
}

func TestTree_EmptyAndSingle(t *testing.T) {
	ctx := context.Background()
	tree, rec := newTree()

	assert.True(t, errors.Is(tree.Delete(ctx, 1), bst.ErrNotFound))
	require.Len(t, rec.Notices(), 1)

	got, err := tree.Traverse(ctx, bst.Inorder)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tree.Insert(ctx, 1))
	got, err = tree.Traverse(ctx, bst.Postorder)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
	require.NoError(t, tree.Delete(ctx, 1))
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Height())
}

func TestTree_ClearsHighlightAndStatus(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for _, v := range []int{4, 2, 6} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	_, err := tree.Search(ctx, 6)
	require.NoError(t, err)
	snap := tree.Snapshot()
	assert.Empty(t, snap.Status.Text)
	for _, n := range snap.Nodes {
		assert.False(t, n.Highlighted)
	}
	assert.False(t, snap.Animating)
}

func TestTree_BusyRejects(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	require.NoError(t, tree.Insert(ctx, 10))

	tree.Pacer().Pause()
	done := make(chan error, 1)
	go func() { done <- tree.Insert(ctx, 5) }()
	require.Eventually(t, tree.Animating, time.Second, time.Millisecond)

	assert.True(t, errors.Is(tree.Insert(ctx, 7), anim.ErrBusy))
	assert.True(t, errors.Is(tree.Delete(ctx, 10), anim.ErrBusy))
	_, err := tree.Search(ctx, 10)
	assert.True(t, errors.Is(err, anim.ErrBusy))
	assert.Equal(t, []int{10}, tree.Values())

	tree.Pacer().Resume()
	require.NoError(t, <-done)
	assert.Equal(t, []int{5, 10}, tree.Values())
}

func TestTree_CancelBeforeCommitIsNoop(t *testing.T) {
	tree, _ := newTree()
	require.NoError(t, tree.Insert(context.Background(), 10))

	tree.Pacer().Pause()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Insert(ctx, 3) }()
	require.Eventually(t, tree.Animating, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []int{10}, tree.Values())
	tree.Pacer().Resume()
}

func TestParseOrder(t *testing.T) {
	o, err := bst.ParseOrder("POST")
	require.NoError(t, err)
	assert.Equal(t, bst.Postorder, o)
	_, err = bst.ParseOrder("level")
	assert.True(t, errors.Is(err, bst.ErrUnknownOrder))
}
