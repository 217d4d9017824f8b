// SPDX-License-Identifier: MIT

package sorting

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Replay applies the reordering of every step to a copy of order and
// returns the result. It fails on the first step that names an element not
// in order or a slot outside it, reporting the step's index.
func Replay(order []uuid.UUID, steps []Step) ([]uuid.UUID, error) {
	out := slices.Clone(order)
	for i, st := range steps {
		var err error
		if out, err = apply(out, st); err != nil {
			return nil, errors.Wrapf(err, "step %d (%T)", i, st)
		}
	}
	return out, nil
}

// apply commits one step to order in place where possible.
func apply(order []uuid.UUID, st Step) ([]uuid.UUID, error) {
	for _, id := range ids(st) {
		if !slices.Contains(order, id) {
			return order, errors.Wrapf(ErrUnknownElement, "%s", id)
		}
	}
	switch st := st.(type) {
	case Swap:
		i, j := slices.Index(order, st.A), slices.Index(order, st.B)
		order[i], order[j] = order[j], order[i]
	case Shift:
		return moveTo(order, st.ID, st.To)
	case Drop:
		return moveTo(order, st.ID, st.To)
	case Take:
		return moveTo(order, st.ID, st.To)
	case Split:
		return order, checkRange(len(order), st.Lo, st.Hi)
	case Merged:
		return order, checkRange(len(order), st.Lo, st.Hi)
	}
	return order, nil
}

func moveTo(order []uuid.UUID, id uuid.UUID, to int) ([]uuid.UUID, error) {
	if to < 0 || to >= len(order) {
		return order, errors.Wrapf(ErrBadRange, "slot %d of %d", to, len(order))
	}
	from := slices.Index(order, id)
	return slices.Insert(slices.Delete(order, from, from+1), to, id), nil
}

func checkRange(n, lo, hi int) error {
	if lo < 0 || hi > n || lo >= hi {
		return errors.Wrapf(ErrBadRange, "range [%d, %d) of %d", lo, hi, n)
	}
	return nil
}
