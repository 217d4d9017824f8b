package sorting_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/algoviz/sorting"
)

func TestReplay(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	order := []uuid.UUID{a, b, c}

	got, err := sorting.Replay(order, []sorting.Step{
		sorting.Compare{A: a, B: b},
		sorting.Swap{A: a, B: c},
		sorting.Shift{ID: b, To: 2},
		sorting.Take{ID: b, To: 0},
		sorting.Settle{ID: b},
	})
	require.NoError(t, err)
	// swap: c b a; shift b to 2: c a b; take b to 0: b c a
	assert.Equal(t, []uuid.UUID{b, c, a}, got)
	assert.Equal(t, []uuid.UUID{a, b, c}, order, "input is not modified")
}

func TestReplay_Errors(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	order := []uuid.UUID{a, b}

	_, err := sorting.Replay(order, []sorting.Step{
		sorting.Compare{A: a, B: b},
		sorting.Swap{A: a, B: uuid.New()},
	})
	assert.True(t, errors.Is(err, sorting.ErrUnknownElement))
	assert.Contains(t, err.Error(), "step 1")

	_, err = sorting.Replay(order, []sorting.Step{sorting.Drop{ID: a, To: 2}})
	assert.True(t, errors.Is(err, sorting.ErrBadRange))

	_, err = sorting.Replay(order, []sorting.Step{sorting.Split{Lo: 1, Hi: 1}})
	assert.True(t, errors.Is(err, sorting.ErrBadRange))
}
