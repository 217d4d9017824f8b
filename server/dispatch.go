// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bst"
	"github.com/katalvlaran/algoviz/linkedlist"
	"github.com/katalvlaran/algoviz/metrics"
	"github.com/katalvlaran/algoviz/sorting"
)

// action executes a resolved command and returns its result payload.
type action func(ctx context.Context) (any, error)

// running is the cancel handle of one animated operation.
type running struct {
	cancel context.CancelFunc
}

// Dispatcher decodes commands and routes them to the engines. Animated
// operations run on their own goroutine; everything else runs inline.
type Dispatcher struct {
	eng     *Engines
	metrics *metrics.Metrics
	log     *zap.Logger

	mu      sync.Mutex
	running map[string]*running
	wg      sync.WaitGroup
}

// NewDispatcher returns a Dispatcher for eng. m may be nil.
func NewDispatcher(eng *Engines, m *metrics.Metrics, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		eng:     eng,
		metrics: m,
		log:     log,
		running: make(map[string]*running),
	}
}

// Handle implements feed.Handler.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte, reply func(v any)) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		err = errors.WithHint(errors.Wrap(ErrBadCommand, err.Error()),
			`send a JSON object such as {"engine":"bst","op":"insert","value":5}`)
		d.finish(cmd, nil, err, reply)
		return
	}
	cmd.Engine = strings.ToLower(strings.TrimSpace(cmd.Engine))
	cmd.Op = strings.ToLower(strings.TrimSpace(cmd.Op))

	act, animated, err := d.resolve(cmd)
	if err != nil {
		d.finish(cmd, nil, err, reply)
		return
	}
	if !animated {
		res, err := act(ctx)
		d.finish(cmd, res, err, reply)
		return
	}

	opCtx, cancel := context.WithCancel(ctx)
	key := runKey(cmd)
	h := d.track(key, cancel)
	if h == nil {
		cancel()
		err := errors.WithHint(errors.Wrapf(anim.ErrBusy, "%s", key),
			"wait for the running animation or send stop")
		d.finish(cmd, nil, err, reply)
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res, err := act(opCtx)
		d.untrack(key, h)
		d.finish(cmd, res, err, reply)
	}()
}

// Wait blocks until every animated operation has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// StopAll cancels every animated operation.
func (d *Dispatcher) StopAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range d.running {
		h.cancel()
	}
}

// runKey names the slot an animated operation occupies. The three list
// engines run independently.
func runKey(cmd Command) string {
	if cmd.Engine != EngineList {
		return cmd.Engine
	}
	if k, err := linkedlist.ParseKind(cmd.Kind); err == nil {
		return cmd.Engine + "/" + k.String()
	}
	return cmd.Engine
}

// track claims the slot for engine. It returns nil when another operation
// already holds it, leaving that operation's handle in place.
func (d *Dispatcher) track(engine string, cancel context.CancelFunc) *running {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.running[engine]; busy {
		return nil
	}
	h := &running{cancel: cancel}
	d.running[engine] = h
	return h
}

func (d *Dispatcher) untrack(engine string, h *running) {
	d.mu.Lock()
	if d.running[engine] == h {
		delete(d.running, engine)
	}
	d.mu.Unlock()
	h.cancel()
}

// stop cancels the animated operation occupying key. A bare "list" key
// stops all three lists.
func (d *Dispatcher) stop(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	stopped := false
	for k, h := range d.running {
		if k == key || (key == EngineList && strings.HasPrefix(k, EngineList+"/")) {
			h.cancel()
			stopped = true
		}
	}
	return stopped
}

func (d *Dispatcher) finish(cmd Command, res any, err error, reply func(v any)) {
	outcome := metrics.OutcomeOK
	r := Reply{ID: cmd.ID, OK: err == nil, Result: res}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = metrics.OutcomeStopped
		r.Error = ErrStopped.Error()
	default:
		outcome = metrics.OutcomeRejected
		r.Error = err.Error()
		r.Hint = strings.Join(errors.GetAllHints(err), "; ")
	}
	if d.metrics != nil && cmd.Op != "" {
		d.metrics.Command(cmd.Engine, cmd.Op, outcome)
	}
	d.log.Debug("command done",
		zap.String("engine", cmd.Engine), zap.String("op", cmd.Op),
		zap.String("outcome", outcome), zap.Error(err))
	reply(r)
}

// resolve maps cmd to an action and reports whether it animates.
func (d *Dispatcher) resolve(cmd Command) (action, bool, error) {
	if cmd.Op == "stop" {
		return d.resolveStop(cmd), false, nil
	}
	switch cmd.Engine {
	case EngineAnim, "":
		return d.resolveAnim(cmd)
	case EngineList:
		return d.resolveList(cmd)
	case EngineBST:
		return d.resolveTree(cmd, treeOps{
			insert:   d.eng.BST.Insert,
			delete:   d.eng.BST.Delete,
			search:   d.eng.BST.Search,
			traverse: d.eng.BST.Traverse,
			reset:    d.eng.BST.Reset,
			snapshot: func() any { return d.eng.BST.Snapshot() },
		})
	case EngineRBTree:
		return d.resolveTree(cmd, treeOps{
			insert:   d.eng.RBTree.Insert,
			delete:   d.eng.RBTree.Delete,
			search:   d.eng.RBTree.Search,
			traverse: d.eng.RBTree.Traverse,
			reset:    d.eng.RBTree.Reset,
			snapshot: func() any { return d.eng.RBTree.Snapshot() },
		})
	case EngineGraph:
		return d.resolveGraph(cmd)
	case EngineSort:
		return d.resolveSort(cmd)
	}
	return nil, false, errors.WithHintf(errors.Wrapf(ErrUnknownEngine, "%q", cmd.Engine),
		"known engines: %s", strings.Join([]string{EngineAnim, EngineList, EngineBST, EngineRBTree, EngineGraph, EngineSort}, ", "))
}

func unknownOp(cmd Command, known ...string) error {
	return errors.WithHintf(errors.Wrapf(ErrUnknownOp, "%s %q", cmd.Engine, cmd.Op),
		"%s supports: %s", cmd.Engine, strings.Join(known, ", "))
}

func (d *Dispatcher) resolveStop(cmd Command) action {
	return func(context.Context) (any, error) {
		stopped := d.stop(runKey(cmd))
		if cmd.Engine == EngineGraph && d.eng.Explorer.Stop() {
			stopped = true
		}
		if cmd.Engine == EngineAnim || cmd.Engine == "" {
			d.StopAll()
			stopped = true
		}
		return map[string]bool{"stopped": stopped}, nil
	}
}

type speedResult struct {
	Paused bool    `json:"paused"`
	Speed  float64 `json:"speed"`
}

func (d *Dispatcher) resolveAnim(cmd Command) (action, bool, error) {
	p := d.eng.Pacer
	state := func() any { return speedResult{Paused: p.Paused(), Speed: p.Speed()} }
	switch cmd.Op {
	case "pause":
		return func(context.Context) (any, error) { p.Pause(); return state(), nil }, false, nil
	case "resume":
		return func(context.Context) (any, error) { p.Resume(); return state(), nil }, false, nil
	case "toggle":
		return func(context.Context) (any, error) { p.Toggle(); return state(), nil }, false, nil
	case "speed":
		return func(context.Context) (any, error) {
			if err := p.SetSpeed(cmd.Speed); err != nil {
				return nil, errors.WithHint(err, "speed is a positive multiplier, 1 is normal")
			}
			return state(), nil
		}, false, nil
	case "status", "snapshot":
		return func(context.Context) (any, error) { return state(), nil }, false, nil
	}
	return nil, false, unknownOp(cmd, "pause", "resume", "toggle", "speed", "stop", "status")
}

func (d *Dispatcher) resolveList(cmd Command) (action, bool, error) {
	kind, err := linkedlist.ParseKind(cmd.Kind)
	if err != nil {
		return nil, false, err
	}
	l := d.eng.Lists[kind]
	withValue := func(fn func(context.Context, int) error) (action, bool, error) {
		v, err := cmd.value()
		if err != nil {
			return nil, false, err
		}
		return func(ctx context.Context) (any, error) { return nil, fn(ctx, v) }, true, nil
	}
	switch cmd.Op {
	case "inserthead":
		return withValue(l.InsertHead)
	case "inserttail":
		return withValue(l.InsertTail)
	case "deletehead":
		return func(ctx context.Context) (any, error) { return nil, l.DeleteHead(ctx) }, true, nil
	case "deletetail":
		return func(ctx context.Context) (any, error) { return nil, l.DeleteTail(ctx) }, true, nil
	case "reset":
		return func(context.Context) (any, error) { return nil, l.Reset() }, false, nil
	case "snapshot":
		return func(context.Context) (any, error) { return l.Snapshot(), nil }, false, nil
	}
	return nil, false, unknownOp(cmd, "insertHead", "insertTail", "deleteHead", "deleteTail", "reset", "snapshot", "stop")
}

// treeOps is the surface shared by the search-tree engines.
type treeOps struct {
	insert   func(context.Context, int) error
	delete   func(context.Context, int) error
	search   func(context.Context, int) (bool, error)
	traverse func(context.Context, bst.Order) ([]int, error)
	reset    func() error
	snapshot func() any
}

func (d *Dispatcher) resolveTree(cmd Command, t treeOps) (action, bool, error) {
	switch cmd.Op {
	case "insert", "delete":
		v, err := cmd.value()
		if err != nil {
			return nil, false, err
		}
		fn := t.insert
		if cmd.Op == "delete" {
			fn = t.delete
		}
		return func(ctx context.Context) (any, error) { return nil, fn(ctx, v) }, true, nil
	case "search":
		v, err := cmd.value()
		if err != nil {
			return nil, false, err
		}
		return func(ctx context.Context) (any, error) {
			found, err := t.search(ctx, v)
			if err != nil {
				return nil, err
			}
			return map[string]bool{"found": found}, nil
		}, true, nil
	case "traverse":
		order, err := bst.ParseOrder(cmd.Order)
		if err != nil {
			return nil, false, err
		}
		return func(ctx context.Context) (any, error) {
			vals, err := t.traverse(ctx, order)
			if err != nil {
				return nil, err
			}
			return map[string][]int{"values": vals}, nil
		}, true, nil
	case "reset":
		return func(context.Context) (any, error) { return nil, t.reset() }, false, nil
	case "snapshot":
		return func(context.Context) (any, error) { return t.snapshot(), nil }, false, nil
	}
	return nil, false, unknownOp(cmd, "insert", "delete", "search", "traverse", "reset", "snapshot", "stop")
}

func (d *Dispatcher) resolveGraph(cmd Command) (action, bool, error) {
	ex := d.eng.Explorer
	inline := func(fn func() (any, error)) (action, bool, error) {
		return func(context.Context) (any, error) { return fn() }, false, nil
	}
	switch cmd.Op {
	case "bfs", "dfs":
		if cmd.Node == "" {
			return nil, false, missing("node", `{"engine":"graph","op":"bfs","node":"n1"}`)
		}
		start := ex.StartBFS
		if cmd.Op == "dfs" {
			start = ex.StartDFS
		}
		return func(ctx context.Context) (any, error) { return nil, start(ctx, cmd.Node) }, true, nil
	case "addnode":
		v, err := cmd.value()
		if err != nil {
			return nil, false, err
		}
		return inline(func() (any, error) {
			id, err := ex.AddNode(v, cmd.position())
			if err != nil {
				return nil, err
			}
			return map[string]string{"id": id}, nil
		})
	case "removenode":
		return inline(func() (any, error) { return nil, ex.RemoveNode(cmd.Node) })
	case "movenode":
		if cmd.Position == nil {
			return nil, false, missing("position", `{"engine":"graph","op":"moveNode","node":"n1","position":{"x":1,"y":0,"z":0}}`)
		}
		return inline(func() (any, error) { return nil, ex.MoveNode(cmd.Node, *cmd.Position) })
	case "addedge":
		return inline(func() (any, error) {
			id, err := ex.AddEdge(cmd.From, cmd.To)
			if err != nil {
				return nil, err
			}
			return map[string]string{"id": id}, nil
		})
	case "removeedge":
		return inline(func() (any, error) { return nil, ex.RemoveEdge(cmd.Edge) })
	case "directed":
		if cmd.Directed == nil {
			return nil, false, missing("directed", `{"engine":"graph","op":"directed","directed":true}`)
		}
		return inline(func() (any, error) { return nil, ex.SetDirected(*cmd.Directed) })
	case "preset":
		return inline(func() (any, error) { return nil, ex.LoadPreset(cmd.Preset, cmd.Size, cmd.Seed) })
	case "reset":
		return inline(func() (any, error) { return nil, ex.Reset() })
	case "clear":
		return inline(func() (any, error) { return nil, ex.Clear() })
	case "snapshot":
		return inline(func() (any, error) { return ex.Snapshot(), nil })
	}
	return nil, false, unknownOp(cmd, "bfs", "dfs", "stop", "addNode", "removeNode", "moveNode",
		"addEdge", "removeEdge", "directed", "preset", "reset", "clear", "snapshot")
}

func (d *Dispatcher) resolveSort(cmd Command) (action, bool, error) {
	s := d.eng.Sorter
	switch cmd.Op {
	case "sort", "start":
		alg, err := sorting.ParseAlgorithm(cmd.Algorithm)
		if err != nil {
			return nil, false, err
		}
		return func(ctx context.Context) (any, error) { return nil, s.Start(ctx, alg) }, true, nil
	case "load":
		return func(context.Context) (any, error) { return nil, s.Load(cmd.Values) }, false, nil
	case "randomize":
		return func(context.Context) (any, error) { return nil, s.Randomize(cmd.Size, cmd.Seed) }, false, nil
	case "reset":
		return func(context.Context) (any, error) { return nil, s.Reset() }, false, nil
	case "snapshot":
		return func(context.Context) (any, error) { return s.Snapshot(), nil }, false, nil
	}
	return nil, false, unknownOp(cmd, "sort", "load", "randomize", "reset", "snapshot", "stop")
}
