// SPDX-License-Identifier: MIT

package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/bst"
	"github.com/katalvlaran/algoviz/explorer"
	"github.com/katalvlaran/algoviz/linkedlist"
	"github.com/katalvlaran/algoviz/rbtree"
	"github.com/katalvlaran/algoviz/sorting"
)

// Engines is one instance of every engine, all sharing a Pacer so pause
// and speed apply everywhere at once.
type Engines struct {
	Pacer    *anim.Pacer
	Lists    map[linkedlist.Kind]*linkedlist.List
	BST      *bst.Tree
	RBTree   *rbtree.Tree
	Explorer *explorer.Explorer
	Sorter   *sorting.Engine
}

// EngineConfig tunes NewEngines. Zero values keep each engine's defaults.
type EngineConfig struct {
	Speed     float64
	StepDelay time.Duration
	Sleep     anim.SleepFunc
}

// NewEngines builds every engine publishing to sink.
func NewEngines(cfg EngineConfig, sink anim.Sink, log *zap.Logger) *Engines {
	pacer := anim.NewPacer(anim.WithSpeed(cfg.Speed), anim.WithSleep(cfg.Sleep))
	e := &Engines{
		Pacer: pacer,
		Lists: make(map[linkedlist.Kind]*linkedlist.List, 3),
	}
	for _, k := range []linkedlist.Kind{linkedlist.Singly, linkedlist.Doubly, linkedlist.Circular} {
		e.Lists[k] = linkedlist.New(k,
			linkedlist.WithPacer(pacer), linkedlist.WithSink(sink), linkedlist.WithLogger(log))
	}

	bstOpts := []bst.Option{bst.WithPacer(pacer), bst.WithSink(sink), bst.WithLogger(log)}
	rbOpts := []rbtree.Option{rbtree.WithPacer(pacer), rbtree.WithSink(sink), rbtree.WithLogger(log)}
	exOpts := []explorer.Option{explorer.WithPacer(pacer), explorer.WithSink(sink), explorer.WithLogger(log)}
	sortOpts := []sorting.Option{sorting.WithPacer(pacer), sorting.WithSink(sink), sorting.WithLogger(log)}
	if cfg.StepDelay > 0 {
		bstOpts = append(bstOpts, bst.WithStepDelay(cfg.StepDelay))
		rbOpts = append(rbOpts, rbtree.WithStepDelay(cfg.StepDelay))
		exOpts = append(exOpts, explorer.WithStepDelay(cfg.StepDelay))
		sortOpts = append(sortOpts, sorting.WithStepDelay(cfg.StepDelay))
	}
	e.BST = bst.New(bstOpts...)
	e.RBTree = rbtree.New(rbOpts...)
	e.Explorer = explorer.New(exOpts...)
	e.Sorter = sorting.New(sortOpts...)
	return e
}
