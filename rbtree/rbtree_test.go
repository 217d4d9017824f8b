package rbtree_test

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
	"github.com/katalvlaran/algoviz/rbtree"
)

func newTree(opts ...rbtree.Option) (*rbtree.Tree, *anim.Recorder) {
	rec := &anim.Recorder{}
	base := []rbtree.Option{
		rbtree.WithPacer(anim.NewPacer(anim.WithSleep(anim.Instant))),
		rbtree.WithSink(rec),
	}
	return rbtree.New(append(base, opts...)...), rec
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
				if err := tree.Insert(ctx, v); errors.Is(err, rbtree.ErrDuplicate) {
					fmt.Fprintf(&out, "duplicate %d\n", v)
				} else {
					require.NoError(t, err)
				}
				require.NoError(t, tree.Check())
			}
			out.WriteString(tree.String())
		case "delete":
			for _, v := range values() {
				if err := tree.Delete(ctx, v); errors.Is(err, rbtree.ErrNotFound) {
					fmt.Fprintf(&out, "not found %d\n", v)
				} else {
					require.NoError(t, err)
				}
				require.NoError(t, tree.Check())
			}
			out.WriteString(tree.String())
		case "reset":
			require.NoError(t, tree.Reset())
			out.WriteString(tree.String())
		case "stats":
			fmt.Fprintf(&out, "len=%d black-height=%d\n", tree.Len(), tree.BlackHeight())
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

func TestTree_InvariantsRandomized(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			r := rand.New(rand.NewSource(seed))
			tree, _ := newTree()
			present := map[int]bool{}
			for i := 0; i < 400; i++ {
				v := r.Intn(60)
				if r.Intn(5) < 2 {
					err := tree.Delete(ctx, v)
					if present[v] {
						require.NoError(t, err, "delete %d", v)
						delete(present, v)
					} else {
						require.True(t, errors.Is(err, rbtree.ErrNotFound))
					}
				} else {
					err := tree.Insert(ctx, v)
					if present[v] {
						require.True(t, errors.Is(err, rbtree.ErrDuplicate))
					} else {
						require.NoError(t, err, "insert %d", v)
						present[v] = true
					}
				}
				require.NoError(t, tree.Check(), "after step %d (value %d)", i, v)
				require.Equal(t, len(present), tree.Len())
			}
		})
	}
}

func TestTree_AscendingInsertStaysBalanced(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for v := 1; v <= 31; v++ {
		require.NoError(t, tree.Insert(ctx, v))
	}
	require.NoError(t, tree.Check())
	// a red-black tree of n nodes is at most 2*log2(n+1) high
	assert.LessOrEqual(t, tree.Height(), 10)
	for v := 1; v <= 31; v += 2 {
		require.NoError(t, tree.Delete(ctx, v))
		require.NoError(t, tree.Check())
	}
	assert.Equal(t, 15, tree.Len())
}

func TestTree_RecolorCaption(t *testing.T) {
	ctx := context.Background()
	tree, rec := newTree()
	for _, v := range []int{10, 20, 30} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	before := len(rec.Frames())
	require.NoError(t, tree.Insert(ctx, 15))

	var captions []string
	for _, f := range rec.Frames()[before:] {
		if text := f.Snapshot.(rbtree.Snapshot).Status.Text; text != "" {
			if len(captions) == 0 || captions[len(captions)-1] != text {
				captions = append(captions, text)
			}
		}
	}
	assert.Contains(t, captions, "uncle 30 is RED: recolor")
	assert.Contains(t, captions, "root 20 must be BLACK")

	snap := tree.Snapshot()
	require.NotEmpty(t, snap.Nodes)
	assert.Equal(t, "black", snap.Nodes[0].Color)
	assert.Equal(t, snap.Root, snap.Nodes[0].ID)
}

func TestTree_SnapshotLinks(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for _, v := range []int{10, 5, 7} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	byValue := map[int]rbtree.NodeView{}
	for _, n := range tree.Snapshot().Nodes {
		byValue[n.Value] = n
	}
	root := byValue[7]
	assert.Equal(t, byValue[5].ID, root.Left)
	assert.Equal(t, byValue[10].ID, root.Right)
	assert.Equal(t, root.ID, byValue[5].Parent)
	assert.Equal(t, "red", byValue[10].Color)
	assert.Less(t, byValue[5].Position.X, root.Position.X)
	assert.Greater(t, root.Position.Y, byValue[10].Position.Y)
}

func TestTree_IDsSurviveRotations(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	require.NoError(t, tree.Insert(ctx, 1))
	first := tree.Snapshot().Root
	require.NoError(t, tree.Insert(ctx, 2))
	require.NoError(t, tree.Insert(ctx, 3))

	// 1 rotated down to become 2's left child
	var found bool
	for _, n := range tree.Snapshot().Nodes {
		if n.Value == 1 {
			found = true
			assert.Equal(t, first, n.ID)
		}
	}
	assert.True(t, found)
}

func TestTree_SearchAndTraverse(t *testing.T) {
	ctx := context.Background()
	tree, _ := newTree()
	for _, v := range []int{5, 3, 8, 1, 4} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	found, err := tree.Search(ctx, 4)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = tree.Search(ctx, 6)
	require.NoError(t, err)
	assert.False(t, found)

	in, err := tree.Traverse(ctx, bst.Inorder)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 4, 5, 8}, in)
	assert.Equal(t, in, tree.Values())

	_, err = tree.Traverse(ctx, bst.Order(9))
	assert.True(t, errors.Is(err, bst.ErrUnknownOrder))
}

func TestTree_BusyRejects(t *testing.T) {
	ctx := context.Background()
	tree, rec := newTree()
	require.NoError(t, tree.Insert(ctx, 10))

	tree.Pacer().Pause()
	done := make(chan error, 1)
	go func() { done <- tree.Insert(ctx, 5) }()
	require.Eventually(t, tree.Animating, time.Second, time.Millisecond)

	assert.True(t, errors.Is(tree.Insert(ctx, 7), anim.ErrBusy))
	assert.True(t, errors.Is(tree.Delete(ctx, 10), anim.ErrBusy))
	assert.True(t, errors.Is(tree.Reset(), anim.ErrBusy))
	assert.Equal(t, []int{10}, tree.Values())
	assert.NotEmpty(t, rec.Notices())

	tree.Pacer().Resume()
	require.NoError(t, <-done)
	assert.Equal(t, []int{5, 10}, tree.Values())
	require.NoError(t, tree.Check())
}

func TestTree_CancelBeforeCommitIsNoop(t *testing.T) {
	tree, _ := newTree()
	require.NoError(t, tree.Insert(context.Background(), 10))

	tree.Pacer().Pause()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Delete(ctx, 10) }()
	require.Eventually(t, tree.Animating, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []int{10}, tree.Values())
	tree.Pacer().Resume()
}

func TestTree_CancelAfterCommitFinishes(t *testing.T) {
	ctx := context.Background()
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sink := &cancelOnCaption{Recorder: &anim.Recorder{}, prefix: "inserted", cancel: cancel}
	tree := rbtree.New(
		rbtree.WithPacer(anim.NewPacer(anim.WithSleep(anim.Instant))),
		rbtree.WithSink(sink),
	)
	for _, v := range []int{10, 20} {
		require.NoError(t, tree.Insert(ctx, v))
	}
	// 30 needs a rotation that must still happen after the cancel
	sink.armed = true
	require.NoError(t, tree.Insert(cctx, 30))
	require.NoError(t, tree.Check())
	assert.Equal(t, []int{10, 20, 30}, tree.Values())
}

// cancelOnCaption cancels a context the first time a frame's caption starts
// with prefix.
type cancelOnCaption struct {
	*anim.Recorder
	prefix string
	cancel context.CancelFunc
	armed  bool
}

func (c *cancelOnCaption) Frame(topic string, snapshot any) {
	c.Recorder.Frame(topic, snapshot)
	if c.armed && strings.HasPrefix(snapshot.(rbtree.Snapshot).Status.Text, c.prefix) {
		c.cancel()
	}
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "RED", rbtree.Red.String())
	assert.Equal(t, "BLACK", rbtree.Black.String())
}
