// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/explorer"
	"github.com/katalvlaran/algoviz/linkedlist"
	"github.com/katalvlaran/algoviz/metrics"
	"github.com/katalvlaran/algoviz/sorting"
)

type DispatchSuite struct {
	suite.Suite
	eng *Engines
	d   *Dispatcher
}

func (s *DispatchSuite) SetupTest() {
	s.eng = NewEngines(EngineConfig{Sleep: anim.Instant}, anim.Discard, nil)
	s.d = NewDispatcher(s.eng, metrics.New(), nil)
}

func (s *DispatchSuite) TearDownTest() {
	s.eng.Pacer.Resume()
	s.d.StopAll()
	s.d.Wait()
}

// send dispatches raw and returns a channel carrying its single reply.
func (s *DispatchSuite) send(raw string) <-chan Reply {
	ch := make(chan Reply, 1)
	s.d.Handle(context.Background(), []byte(raw), func(v any) {
		r, ok := v.(Reply)
		s.Require().True(ok, "reply of type %T", v)
		ch <- r
	})
	return ch
}

func (s *DispatchSuite) await(ch <-chan Reply) Reply {
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		s.FailNow("no reply")
	}
	return Reply{}
}

func (s *DispatchSuite) do(raw string) Reply { return s.await(s.send(raw)) }

func (s *DispatchSuite) TestMalformed() {
	r := s.do(`{"engine":`)
	s.False(r.OK)
	s.Contains(r.Error, ErrBadCommand.Error())
	s.Contains(r.Hint, `"engine":"bst"`)
}

func (s *DispatchSuite) TestUnknownEngineAndOp() {
	r := s.do(`{"id":"7","engine":"heap","op":"insert"}`)
	s.Equal("7", r.ID)
	s.False(r.OK)
	s.Contains(r.Error, ErrUnknownEngine.Error())
	s.Contains(r.Hint, "rbtree")

	r = s.do(`{"engine":"bst","op":"rotate"}`)
	s.Contains(r.Error, ErrUnknownOp.Error())
	s.Contains(r.Hint, "traverse")
}

func (s *DispatchSuite) TestMissingValue() {
	r := s.do(`{"engine":"rbtree","op":"insert"}`)
	s.False(r.OK)
	s.Contains(r.Error, ErrMissingField.Error())
	s.Contains(r.Hint, `"value":5`)
	s.Zero(s.eng.RBTree.Len())
}

func (s *DispatchSuite) TestTreeInsertAndTraverse() {
	for _, v := range []string{"5", "3", "8", "1", "4"} {
		r := s.do(`{"engine":"bst","op":"insert","value":` + v + `}`)
		s.Require().True(r.OK, r.Error)
	}
	r := s.do(`{"engine":"bst","op":"traverse","order":"preorder"}`)
	s.Require().True(r.OK, r.Error)
	s.Equal(map[string][]int{"values": {5, 3, 1, 4, 8}}, r.Result)

	r = s.do(`{"engine":"bst","op":"search","value":4}`)
	s.Equal(map[string]bool{"found": true}, r.Result)

	r = s.do(`{"engine":"bst","op":"insert","value":4}`)
	s.False(r.OK)
	s.NotEmpty(r.Error)
}

func (s *DispatchSuite) TestRBTreeKeepsBalance() {
	for _, v := range []string{"10", "20", "30", "15"} {
		s.Require().True(s.do(`{"engine":"RBTree","op":"Insert","value":`+v+`}`).OK)
	}
	s.NoError(s.eng.RBTree.Check())
	s.Equal([]int{10, 15, 20, 30}, s.eng.RBTree.Values())
}

func (s *DispatchSuite) TestListsAreSeparate() {
	s.Require().True(s.do(`{"engine":"list","op":"insertTail","kind":"doubly","value":7}`).OK)
	s.Require().True(s.do(`{"engine":"list","op":"insertHead","kind":"circular","value":9}`).OK)
	s.Equal([]int{7}, s.eng.Lists[linkedlist.Doubly].Values())
	s.Equal([]int{9}, s.eng.Lists[linkedlist.Circular].Values())
	s.Zero(s.eng.Lists[linkedlist.Singly].Len())

	r := s.do(`{"engine":"list","op":"deleteHead","kind":"singly"}`)
	s.False(r.OK)
	s.Contains(r.Error, linkedlist.ErrEmpty.Error())

	r = s.do(`{"engine":"list","op":"insertTail","kind":"skip","value":1}`)
	s.Contains(r.Error, linkedlist.ErrUnknownKind.Error())
}

func (s *DispatchSuite) TestPacerControls() {
	r := s.do(`{"engine":"anim","op":"pause"}`)
	s.Equal(speedResult{Paused: true, Speed: anim.DefaultSpeed}, r.Result)
	r = s.do(`{"op":"speed","speed":2}`)
	s.Equal(speedResult{Paused: true, Speed: 2}, r.Result)
	r = s.do(`{"engine":"anim","op":"resume"}`)
	s.Equal(speedResult{Paused: false, Speed: 2}, r.Result)

	r = s.do(`{"engine":"anim","op":"speed","speed":-1}`)
	s.False(r.OK)
	s.Contains(r.Hint, "positive multiplier")
	s.Equal(2.0, s.eng.Pacer.Speed())
}

func (s *DispatchSuite) TestStopAndBusy() {
	s.Require().True(s.do(`{"engine":"sort","op":"load","values":[3,1,2]}`).OK)
	s.eng.Pacer.Pause()
	sorted := s.send(`{"id":"s","engine":"sort","op":"sort","algorithm":"bubble"}`)
	s.Eventually(s.eng.Sorter.Animating, time.Second, time.Millisecond)

	r := s.do(`{"engine":"sort","op":"load","values":[1]}`)
	s.False(r.OK)
	s.Contains(r.Error, anim.ErrBusy.Error())

	r = s.do(`{"engine":"sort","op":"stop"}`)
	s.Equal(map[string]bool{"stopped": true}, r.Result)

	r = s.await(sorted)
	s.Equal("s", r.ID)
	s.False(r.OK)
	s.Equal(ErrStopped.Error(), r.Error)
	s.False(s.eng.Sorter.Animating())

	r = s.do(`{"engine":"sort","op":"stop"}`)
	s.Equal(map[string]bool{"stopped": false}, r.Result)
}

func (s *DispatchSuite) TestBusyRejectKeepsStopHandle() {
	s.Require().True(s.do(`{"engine":"bst","op":"insert","value":5}`).OK)
	s.eng.Pacer.Pause()
	first := s.send(`{"id":"a","engine":"bst","op":"insert","value":3}`)
	s.Eventually(s.eng.BST.Animating, time.Second, time.Millisecond)

	r := s.do(`{"id":"b","engine":"bst","op":"insert","value":7}`)
	s.Equal("b", r.ID)
	s.False(r.OK)
	s.Contains(r.Error, anim.ErrBusy.Error())
	s.Contains(r.Hint, "send stop")

	r = s.do(`{"engine":"bst","op":"stop"}`)
	s.Equal(map[string]bool{"stopped": true}, r.Result)

	r = s.await(first)
	s.Equal("a", r.ID)
	s.Equal(ErrStopped.Error(), r.Error)
	s.False(s.eng.BST.Animating())
	s.Equal([]int{5}, s.eng.BST.Values())
}

func (s *DispatchSuite) TestSortRuns() {
	s.Require().True(s.do(`{"engine":"sort","op":"load","values":[5,2,9,1]}`).OK)
	r := s.do(`{"engine":"sort","op":"sort","algorithm":"quick"}`)
	s.Require().True(r.OK, r.Error)
	s.Equal([]int{1, 2, 5, 9}, s.eng.Sorter.Values())

	r = s.do(`{"engine":"sort","op":"sort","algorithm":"bogo"}`)
	s.Contains(r.Error, sorting.ErrUnknownAlgorithm.Error())
	s.Contains(r.Hint, "choose one of")
}

func (s *DispatchSuite) TestGraph() {
	s.Require().True(s.do(`{"engine":"graph","op":"preset","preset":"path","size":3}`).OK)
	r := s.do(`{"engine":"graph","op":"bfs"}`)
	s.Contains(r.Error, ErrMissingField.Error())

	r = s.do(`{"engine":"graph","op":"bfs","node":"n1"}`)
	s.Require().True(r.OK, r.Error)
	snap, ok := s.do(`{"engine":"graph","op":"snapshot"}`).Result.(explorer.Snapshot)
	s.Require().True(ok)
	s.Equal(explorer.ModeBFS, snap.Mode)
	s.Equal("bfs finished: visited 3 nodes", snap.Status.Text)

	r = s.do(`{"engine":"graph","op":"addNode","value":4,"position":{"x":1,"y":2,"z":0}}`)
	s.Require().True(r.OK, r.Error)
	id := r.Result.(map[string]string)["id"]
	s.NotEmpty(id)
	r = s.do(`{"engine":"graph","op":"addEdge","from":"n3","to":"` + id + `"}`)
	s.Require().True(r.OK, r.Error)
	s.Equal(3, s.eng.Explorer.Graph().EdgeCount())

	r = s.do(`{"engine":"graph","op":"directed","directed":true}`)
	s.Require().True(r.OK, r.Error)
	s.True(s.eng.Explorer.Graph().Directed())
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}
