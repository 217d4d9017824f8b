// SPDX-License-Identifier: MIT

package sorting

import (
	"fmt"

	"github.com/google/uuid"
)

// Step is one visible action of a sort. The set of variants is closed.
//
// Steps that move elements (Swap, Shift, Drop, Take) carry the slot the
// element ends up in, or the ids it trades places with; Replay applies
// them to an order of element ids.
type Step interface {
	isStep()
}

// Compare highlights A and B while their values are compared.
type Compare struct{ A, B uuid.UUID }

// Swap exchanges the slots of A and B.
type Swap struct{ A, B uuid.UUID }

// MarkMin marks the smallest element seen so far in a selection pass.
type MarkMin struct{ ID uuid.UUID }

// MarkPivot marks the partition pivot.
type MarkPivot struct{ ID uuid.UUID }

// Lift raises the insertion key out of the row.
type Lift struct{ ID uuid.UUID }

// Shift moves ID one slot right, to To, past the lifted key.
type Shift struct {
	ID uuid.UUID
	To int
}

// Drop lowers the lifted key into slot To.
type Drop struct {
	ID uuid.UUID
	To int
}

// Split lowers slots [Lo, Hi) to recursion level Depth.
type Split struct{ Lo, Hi, Depth int }

// Take moves ID into slot To of the range being merged, one level up.
type Take struct {
	ID uuid.UUID
	To int
}

// Merged marks slots [Lo, Hi) as merged at level Depth.
type Merged struct{ Lo, Hi, Depth int }

// Settle marks ID as being in its final slot.
type Settle struct{ ID uuid.UUID }

func (Compare) isStep()   {}
func (Swap) isStep()      {}
func (MarkMin) isStep()   {}
func (MarkPivot) isStep() {}
func (Lift) isStep()      {}
func (Shift) isStep()     {}
func (Drop) isStep()      {}
func (Split) isStep()     {}
func (Take) isStep()      {}
func (Merged) isStep()    {}
func (Settle) isStep()    {}

// ids returns the element ids a step refers to.
func ids(st Step) []uuid.UUID {
	switch st := st.(type) {
	case Compare:
		return []uuid.UUID{st.A, st.B}
	case Swap:
		return []uuid.UUID{st.A, st.B}
	case MarkMin:
		return []uuid.UUID{st.ID}
	case MarkPivot:
		return []uuid.UUID{st.ID}
	case Lift:
		return []uuid.UUID{st.ID}
	case Shift:
		return []uuid.UUID{st.ID}
	case Drop:
		return []uuid.UUID{st.ID}
	case Take:
		return []uuid.UUID{st.ID}
	case Settle:
		return []uuid.UUID{st.ID}
	}
	return nil
}

// Describe renders a step as a caption, resolving ids to values.
func Describe(st Step, value func(uuid.UUID) int) string {
	switch st := st.(type) {
	case Compare:
		return fmt.Sprintf("compare %d and %d", value(st.A), value(st.B))
	case Swap:
		return fmt.Sprintf("swap %d and %d", value(st.A), value(st.B))
	case MarkMin:
		return fmt.Sprintf("%d is the smallest so far", value(st.ID))
	case MarkPivot:
		return fmt.Sprintf("pivot is %d", value(st.ID))
	case Lift:
		return fmt.Sprintf("lift %d out", value(st.ID))
	case Shift:
		return fmt.Sprintf("shift %d right to slot %d", value(st.ID), st.To)
	case Drop:
		return fmt.Sprintf("drop %d into slot %d", value(st.ID), st.To)
	case Split:
		return fmt.Sprintf("split slots %d..%d", st.Lo, st.Hi-1)
	case Take:
		return fmt.Sprintf("take %d into slot %d", value(st.ID), st.To)
	case Merged:
		return fmt.Sprintf("merged slots %d..%d", st.Lo, st.Hi-1)
	case Settle:
		return fmt.Sprintf("%d is in place", value(st.ID))
	}
	return fmt.Sprintf("%T", st)
}
