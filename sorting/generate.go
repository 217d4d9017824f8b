// SPDX-License-Identifier: MIT

package sorting

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Generate returns the steps alg takes to sort elems ascending. It does not
// modify elems. Fewer than two elements yield no steps.
func Generate(alg Algorithm, elems []Element) ([]Step, error) {
	g := newGen(elems)
	switch alg {
	case Bubble:
		g.bubble()
	case Selection:
		g.selection()
	case Insertion:
		g.insertion()
	case Merge:
		g.mergeSort(0, len(elems), 0)
	case Quick:
		g.quick(0, len(elems)-1)
	default:
		return nil, errors.WithHint(errors.Wrapf(ErrUnknownAlgorithm, "generate %q", alg),
			"use ParseAlgorithm to normalize user input")
	}
	return g.steps, nil
}

// gen mirrors the array while steps are generated: ids and vals are
// slot-indexed and every emitted move is applied to them.
type gen struct {
	ids   []uuid.UUID
	vals  []int
	steps []Step
}

func newGen(elems []Element) *gen {
	g := &gen{ids: make([]uuid.UUID, len(elems)), vals: make([]int, len(elems))}
	for i, e := range elems {
		g.ids[i], g.vals[i] = e.ID, e.Value
	}
	return g
}

func (g *gen) emit(st Step) { g.steps = append(g.steps, st) }

// compare emits Compare for slots i and j and returns vals[i]-vals[j].
func (g *gen) compare(i, j int) int {
	g.emit(Compare{A: g.ids[i], B: g.ids[j]})
	return g.vals[i] - g.vals[j]
}

func (g *gen) swap(i, j int) {
	g.emit(Swap{A: g.ids[i], B: g.ids[j]})
	g.ids[i], g.ids[j] = g.ids[j], g.ids[i]
	g.vals[i], g.vals[j] = g.vals[j], g.vals[i]
}

// move takes the element at from out and reinserts it at to.
func (g *gen) move(from, to int) {
	id, v := g.ids[from], g.vals[from]
	g.ids = slices.Insert(slices.Delete(g.ids, from, from+1), to, id)
	g.vals = slices.Insert(slices.Delete(g.vals, from, from+1), to, v)
}

func (g *gen) settle(i int) { g.emit(Settle{ID: g.ids[i]}) }

func (g *gen) bubble() {
	n := len(g.ids)
	if n < 2 {
		return
	}
	for end := n - 1; end > 0; end-- {
		swapped := false
		for i := 0; i < end; i++ {
			if g.compare(i, i+1) > 0 {
				g.swap(i, i+1)
				swapped = true
			}
		}
		g.settle(end)
		if !swapped {
			for k := end - 1; k >= 0; k-- {
				g.settle(k)
			}
			return
		}
	}
	g.settle(0)
}

func (g *gen) selection() {
	n := len(g.ids)
	if n < 2 {
		return
	}
	for i := 0; i < n-1; i++ {
		low := i
		g.emit(MarkMin{ID: g.ids[low]})
		for j := i + 1; j < n; j++ {
			if g.compare(j, low) < 0 {
				low = j
				g.emit(MarkMin{ID: g.ids[low]})
			}
		}
		if low != i {
			g.swap(i, low)
		}
		g.settle(i)
	}
	g.settle(n - 1)
}

func (g *gen) insertion() {
	n := len(g.ids)
	if n < 2 {
		return
	}
	for i := 1; i < n; i++ {
		key := g.ids[i]
		g.emit(Lift{ID: key})
		// The key keeps a slot while lifted; each shift trades it one slot left.
		j := i
		for j > 0 && g.compare(j-1, j) > 0 {
			g.emit(Shift{ID: g.ids[j-1], To: j})
			g.move(j-1, j)
			j--
		}
		g.emit(Drop{ID: key, To: j})
	}
	for i := range g.ids {
		g.settle(i)
	}
}

// mergeSort sorts slots [lo, hi). While merging, the slots from k on hold
// the rest of the left half followed by the rest of the right half, so the
// next element always comes from slot k or slot k+nl.
func (g *gen) mergeSort(lo, hi, depth int) {
	if hi-lo < 2 {
		return
	}
	mid := (lo + hi) / 2
	g.emit(Split{Lo: lo, Hi: mid, Depth: depth + 1})
	g.mergeSort(lo, mid, depth+1)
	g.emit(Split{Lo: mid, Hi: hi, Depth: depth + 1})
	g.mergeSort(mid, hi, depth+1)

	nl, nr := mid-lo, hi-mid
	for k := lo; nl > 0 || nr > 0; k++ {
		from := k
		switch {
		case nl > 0 && nr > 0:
			if g.compare(k, k+nl) <= 0 {
				nl--
			} else {
				from = k + nl
				nr--
			}
		case nl > 0:
			nl--
		default:
			nr--
		}
		g.emit(Take{ID: g.ids[from], To: k})
		g.move(from, k)
	}
	g.emit(Merged{Lo: lo, Hi: hi, Depth: depth})
	if depth == 0 {
		for i := lo; i < hi; i++ {
			g.settle(i)
		}
	}
}

// quick sorts slots [lo, hi] with a Lomuto partition around the last slot.
func (g *gen) quick(lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		if len(g.ids) > 1 {
			g.settle(lo)
		}
		return
	}
	g.emit(MarkPivot{ID: g.ids[hi]})
	i := lo
	for j := lo; j < hi; j++ {
		if g.compare(j, hi) <= 0 {
			if i != j {
				g.swap(i, j)
			}
			i++
		}
	}
	if i != hi {
		g.swap(i, hi)
	}
	g.settle(i)
	g.quick(lo, i-1)
	g.quick(i+1, hi)
}
