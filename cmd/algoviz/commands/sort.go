// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/algoviz/sorting"
)

type sortOptions struct {
	algorithm string
	random    int
	seed      int64
	height    int
	every     bool
}

func newSortCmd(a *app) *cobra.Command {
	var o sortOptions
	cmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "Print the steps of a sorting algorithm as ascii charts",
		Example: `  algoviz sort -a quick 5 2 9 1 7
  algoviz sort -a merge --random 12 --seed 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := sortValues(args, o)
			if err != nil {
				return err
			}
			alg, err := sorting.ParseAlgorithm(o.algorithm)
			if err != nil {
				return err
			}
			a.log.Debug("sort", zap.String("algorithm", string(alg)), zap.Ints("values", values))
			return printSort(cmd.OutOrStdout(), alg, values, o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.algorithm, "algorithm", "a", string(sorting.Bubble), "bubble, selection, insertion, merge or quick")
	f.IntVar(&o.random, "random", 0, "sort this many random values instead of the arguments")
	f.Int64Var(&o.seed, "seed", 1, "seed for --random")
	f.IntVar(&o.height, "height", 6, "chart height in rows")
	f.BoolVar(&o.every, "every", false, "chart every step, not only the ones that settle an element")
	return cmd
}

func sortValues(args []string, o sortOptions) ([]int, error) {
	if o.random > 0 {
		if len(args) > 0 {
			return nil, errors.WithHint(errors.New("values given together with --random"), "pass either values or --random")
		}
		r := rand.New(rand.NewSource(o.seed))
		values := make([]int, o.random)
		for i := range values {
			values[i] = sorting.MinValue + r.Intn(sorting.MaxValue-sorting.MinValue+1)
		}
		return values, sorting.ValidateValues(values)
	}
	values := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.WithHint(errors.Wrapf(err, "value %d", i+1), "values are integers")
		}
		values[i] = v
	}
	return values, sorting.ValidateValues(values)
}

// printSort replays alg over values and charts the array after each
// settling step, or after every step when o.every is set.
func printSort(w io.Writer, alg sorting.Algorithm, values []int, o sortOptions) error {
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "nothing to sort")
		return err
	}
	elems := make([]sorting.Element, len(values))
	order := make([]uuid.UUID, len(values))
	byID := make(map[uuid.UUID]int, len(values))
	for i, v := range values {
		elems[i] = sorting.Element{ID: uuid.New(), Value: v}
		order[i] = elems[i].ID
		byID[elems[i].ID] = v
	}
	valueOf := func(id uuid.UUID) int { return byID[id] }

	steps, err := sorting.Generate(alg, elems)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s sort of %v, %d steps\n\n", alg, values, len(steps))
	chart(w, order, valueOf, o.height, "start")

	var comparisons, writes int
	for i, st := range steps {
		switch st.(type) {
		case sorting.Compare:
			comparisons++
		case sorting.Swap, sorting.Shift, sorting.Drop, sorting.Take:
			writes++
		}
		_, settle := st.(sorting.Settle)
		if !o.every && !settle {
			continue
		}
		cur, err := sorting.Replay(order, steps[:i+1])
		if err != nil {
			return err
		}
		chart(w, cur, valueOf, o.height,
			fmt.Sprintf("step %d/%d: %s", i+1, len(steps), sorting.Describe(st, valueOf)))
	}

	final, err := sorting.Replay(order, steps)
	if err != nil {
		return err
	}
	sorted := make([]int, len(final))
	for i, id := range final {
		sorted[i] = valueOf(id)
	}
	_, err = fmt.Fprintf(w, "sorted: %v\n%d comparisons, %d writes\n", sorted, comparisons, writes)
	return err
}

func chart(w io.Writer, order []uuid.UUID, valueOf func(uuid.UUID) int, height int, caption string) {
	data := make([]float64, len(order))
	for i, id := range order {
		data[i] = float64(valueOf(id))
	}
	fmt.Fprintln(w, asciigraph.Plot(data, asciigraph.Height(height), asciigraph.Caption(caption)))
	fmt.Fprintln(w)
}
