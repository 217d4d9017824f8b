// SPDX-License-Identifier: MIT

package sorting

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/katalvlaran/algoviz/anim"
	"github.com/katalvlaran/algoviz/geom"
)

// Player animates a step list over an array of elements. Each step is
// eased over a fixed number of frames and committed only once its last
// frame was shown; a cancelled step is discarded and every element snaps
// back to its committed slot.
type Player struct {
	mu          sync.RWMutex
	elems       map[uuid.UUID]*element
	order       []uuid.UUID
	algo        Algorithm
	step, steps int
	comparisons int
	writes      int
	status      anim.Status

	pacer   *anim.Pacer
	frames  int
	delay   time.Duration
	onFrame func()
}

type element struct {
	Element
	pos    geom.Vec3
	level  int
	lifted bool
	role   Role
	sorted bool
}

// NewPlayer returns a Player that waits on pacer, spreads delay over frames
// frames per step and calls onFrame after every visible change.
func NewPlayer(pacer *anim.Pacer, frames int, delay time.Duration, onFrame func()) *Player {
	if frames < 1 {
		frames = 1
	}
	if onFrame == nil {
		onFrame = func() {}
	}
	return &Player{
		elems:   make(map[uuid.UUID]*element),
		pacer:   pacer,
		frames:  frames,
		delay:   delay,
		onFrame: onFrame,
	}
}

// Load replaces the array, laying elements out in the given order.
func (p *Player) Load(elems []Element) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elems = make(map[uuid.UUID]*element, len(elems))
	p.order = make([]uuid.UUID, len(elems))
	for i, e := range elems {
		p.order[i] = e.ID
		p.elems[e.ID] = &element{Element: e}
	}
	p.algo = ""
	p.step, p.steps, p.comparisons, p.writes = 0, 0, 0, 0
	p.status = anim.Status{}
	p.snapLocked()
}

// Elements returns the elements in their current slot order.
func (p *Player) Elements() []Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Element, len(p.order))
	for i, id := range p.order {
		out[i] = p.elems[id].Element
	}
	return out
}

// prepare clears sorted flags and counters before a new run.
func (p *Player) prepare(alg Algorithm, steps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, el := range p.elems {
		el.sorted, el.role, el.level, el.lifted = false, RoleNone, 0, false
	}
	p.algo = alg
	p.step, p.steps, p.comparisons, p.writes = 0, steps, 0, 0
	p.status = anim.Status{}
	p.snapLocked()
}

// Play animates steps in order. On success every element is marked
// sorted. On cancellation the current step is discarded and the context
// error is returned.
//
// A step naming an element the Player does not hold is a programming error
// and panics.
func (p *Player) Play(ctx context.Context, steps []Step) error {
	p.mu.Lock()
	if p.steps == 0 {
		p.steps = len(steps)
	}
	p.mu.Unlock()

	for i, st := range steps {
		if err := p.playStep(ctx, st); err != nil {
			p.mu.Lock()
			for _, el := range p.elems {
				if el.role == RoleMoving || el.role == RoleCompare {
					el.role = RoleNone
				}
			}
			p.status = anim.Status{Text: fmt.Sprintf("stopped at step %d of %d", i, len(steps))}
			p.snapLocked()
			p.mu.Unlock()
			p.onFrame()
			return err
		}
		p.mu.Lock()
		p.step = i + 1
		p.mu.Unlock()
	}

	p.mu.Lock()
	for _, el := range p.elems {
		el.sorted, el.role = true, RoleNone
	}
	p.status = anim.Status{Text: fmt.Sprintf("sorted: %d comparisons, %d writes", p.comparisons, p.writes)}
	p.snapLocked()
	p.mu.Unlock()
	p.onFrame()
	return nil
}

// staged is the committed effect of a step, computed before it is shown.
type staged struct {
	order  []uuid.UUID
	level  map[uuid.UUID]int
	lifted map[uuid.UUID]bool
}

func (p *Player) playStep(ctx context.Context, st Step) error {
	p.mu.Lock()
	next := p.stageLocked(st)
	from := make(map[uuid.UUID]geom.Vec3, len(p.elems))
	to := make(map[uuid.UUID]geom.Vec3, len(p.elems))
	for slot, id := range next.order {
		from[id] = p.elems[id].pos
		to[id] = p.slotPos(slot, len(next.order), next.levelOf(p.elems[id]), next.liftedOf(p.elems[id]))
	}
	p.markLocked(st)
	p.status = anim.Status{Text: Describe(st, p.valueLocked), Anchor: p.anchorLocked(st, to)}
	p.mu.Unlock()

	swap, isSwap := st.(Swap)
	frameDelay := p.delay / time.Duration(p.frames)
	for f := 1; f <= p.frames; f++ {
		t := float64(f) / float64(p.frames)
		k := geom.EaseInOut(t)
		p.mu.Lock()
		for id, el := range p.elems {
			pos := geom.Lerp(from[id], to[id], k)
			if isSwap {
				switch id {
				case swap.A:
					pos.Y += geom.Arc(SwapArc, t)
				case swap.B:
					pos.Y -= geom.Arc(SwapArc, t)
				}
			}
			el.pos = pos
		}
		p.mu.Unlock()
		p.onFrame()
		if err := p.pacer.Wait(ctx, frameDelay); err != nil {
			return err
		}
	}

	p.mu.Lock()
	p.commitLocked(st, next)
	p.mu.Unlock()
	p.onFrame()
	return nil
}

// stageLocked computes what committing st will change without changing it.
func (p *Player) stageLocked(st Step) staged {
	for _, id := range ids(st) {
		if _, ok := p.elems[id]; !ok {
			panic(errors.AssertionFailedf("sorting: %T names unknown element %s", st, id))
		}
	}
	order, err := apply(slices.Clone(p.order), st)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "sorting: cannot play %T", st))
	}
	next := staged{order: order, level: map[uuid.UUID]int{}, lifted: map[uuid.UUID]bool{}}
	switch st := st.(type) {
	case Lift:
		next.lifted[st.ID] = true
	case Drop:
		next.lifted[st.ID] = false
	case Take:
		next.level[st.ID] = max(0, p.elems[st.ID].level-1)
	case Split:
		for _, id := range order[st.Lo:st.Hi] {
			next.level[id] = st.Depth
		}
	case Merged:
		for _, id := range order[st.Lo:st.Hi] {
			next.level[id] = st.Depth
		}
	}
	return next
}

func (s staged) levelOf(el *element) int {
	if l, ok := s.level[el.ID]; ok {
		return l
	}
	return el.level
}

func (s staged) liftedOf(el *element) bool {
	if l, ok := s.lifted[el.ID]; ok {
		return l
	}
	return el.lifted
}

// markLocked sets the highlight roles a step shows while it animates.
func (p *Player) markLocked(st Step) {
	for _, el := range p.elems {
		if el.role == RoleCompare || el.role == RoleMoving {
			el.role = RoleNone
		}
	}
	set := func(id uuid.UUID, r Role) { p.elems[id].role = r }
	switch st := st.(type) {
	case Compare:
		set(st.A, RoleCompare)
		set(st.B, RoleCompare)
	case Swap:
		set(st.A, RoleMoving)
		set(st.B, RoleMoving)
	case MarkMin:
		for _, el := range p.elems {
			if el.role == RoleMin {
				el.role = RoleNone
			}
		}
		set(st.ID, RoleMin)
	case MarkPivot:
		set(st.ID, RolePivot)
	case Lift:
		set(st.ID, RoleLifted)
	case Shift:
		set(st.ID, RoleMoving)
	case Drop:
		set(st.ID, RoleMoving)
	case Take:
		set(st.ID, RoleMoving)
	}
}

func (p *Player) commitLocked(st Step, next staged) {
	p.order = next.order
	for id, l := range next.level {
		p.elems[id].level = l
	}
	for id, l := range next.lifted {
		p.elems[id].lifted = l
	}
	switch st := st.(type) {
	case Compare:
		p.comparisons++
	case Swap:
		p.writes++
	case Shift, Take:
		p.writes++
	case Drop:
		p.writes++
		p.elems[st.ID].role = RoleNone
	case Settle:
		for _, el := range p.elems {
			if el.role == RoleMin {
				el.role = RoleNone
			}
		}
		el := p.elems[st.ID]
		el.sorted, el.role = true, RoleNone
	}
	p.snapLocked()
}

// snapLocked puts every element exactly on its committed slot.
func (p *Player) snapLocked() {
	for slot, id := range p.order {
		el := p.elems[id]
		el.pos = p.slotPos(slot, len(p.order), el.level, el.lifted)
	}
}

func (p *Player) slotPos(slot, n, level int, lifted bool) geom.Vec3 {
	pos := geom.Row(slot, n, Spacing)
	pos.Y = -float64(level) * LevelDrop
	if lifted {
		pos.Y += LiftHeight
	}
	return pos
}

func (p *Player) anchorLocked(st Step, to map[uuid.UUID]geom.Vec3) geom.Vec3 {
	above := geom.Vec3{Y: LiftHeight + 1}
	switch st := st.(type) {
	case Split:
		return geom.Row(st.Lo, len(p.order), Spacing).Add(geom.Row(st.Hi-1, len(p.order), Spacing)).Scale(0.5).Add(above)
	case Merged:
		return geom.Row(st.Lo, len(p.order), Spacing).Add(geom.Row(st.Hi-1, len(p.order), Spacing)).Scale(0.5).Add(above)
	}
	if refs := ids(st); len(refs) > 0 {
		return geom.Vec3{X: to[refs[0]].X}.Add(above)
	}
	return above
}

func (p *Player) valueLocked(id uuid.UUID) int {
	if el, ok := p.elems[id]; ok {
		return el.Value
	}
	return 0
}

// Snapshot returns the array in slot order. Animating is left false; the
// Engine owning the Player fills it in.
func (p *Player) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	views := make([]ElementView, len(p.order))
	for slot, id := range p.order {
		el := p.elems[id]
		views[slot] = ElementView{
			ID:       id,
			Value:    el.Value,
			Slot:     slot,
			Position: el.pos,
			Role:     el.role,
			Sorted:   el.sorted,
		}
	}
	return Snapshot{
		Algorithm:   p.algo,
		Elements:    views,
		Step:        p.step,
		Steps:       p.steps,
		Comparisons: p.comparisons,
		Writes:      p.writes,
		Status:      p.status,
	}
}
