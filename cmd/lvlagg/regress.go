// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvlagg/config"
	"github.com/katalvlaran/lvlagg/igd"
	"github.com/katalvlaran/lvlagg/igd/task"
	"github.com/katalvlaran/lvlagg/matrix"
	"github.com/katalvlaran/lvlagg/round"
	"github.com/spf13/cobra"
)

type (
	model    = *matrix.Dense
	rowTuple = igd.Tuple[[]float64, float64]
	state    = igd.State[model]
)

type regressResult struct {
	Task      string    `json:"task"`
	Rows      int       `json:"rows"`
	Rounds    int       `json:"rounds"`
	MiniBatch bool      `json:"mini_batch"`
	Losses    []float64 `json:"losses"`
	Model     []float64 `json:"model"`
}

func newRegressCmd(a *app) *cobra.Command {
	var (
		data      string
		taskName  string
		miniBatch bool
	)

	cmd := &cobra.Command{
		Use:   "regress --data <file>",
		Short: "Fit a linear or logistic model",
		Long: `Read numeric rows (features first, label last) from a CSV file and run
max_rounds IGD rounds. With single-row folding each loss is measured against
the model published by the previous round; with --mini-batch it is the
first-epoch training loss.

Examples:
  lvlagg regress --data points.csv
  lvlagg regress --data labels.csv --task logistic --mini-batch`,
		Run: func(cmd *cobra.Command, _ []string) {
			if data == "" {
				logUsageCmd(*cmd, cmd.Use)

				return
			}
			if taskName != "" {
				a.cfg.Regress.Task = taskName
				if err := a.cfg.Validate(); err != nil {
					logErrorCmd(*cmd, err)

					return
				}
			}
			x, y, err := readTable(data)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			res, err := a.regress(cmd.Context(), x, y, miniBatch)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, res)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "CSV file of feature rows with the label last")
	cmd.Flags().StringVarP(&taskName, "task", "t", "", "least_squares or logistic (overrides regress.task)")
	cmd.Flags().BoolVar(&miniBatch, "mini-batch", false, "fold each partition as one mini-batch")

	return cmd
}

func newTask(name string) (igd.Task[model, []float64, float64], error) {
	switch name {
	case config.TaskLeastSquares:
		return task.LeastSquares{}, nil
	case config.TaskLogistic:
		return task.Logistic{}, nil
	default:
		return nil, fmt.Errorf("%w: regress.task=%s", config.ErrInvalidConfig, name)
	}
}

// regress runs MaxRounds rounds starting from the zero model.
func (a *app) regress(ctx context.Context, x [][]float64, y []float64, miniBatch bool) (regressResult, error) {
	t, err := newTask(a.cfg.Regress.Task)
	if err != nil {
		return regressResult{}, err
	}
	e, err := igd.New(t, igd.WithBatchOrder(a.cfg.BatchOrder()), igd.WithSeed(a.cfg.Regress.Seed))
	if err != nil {
		return regressResult{}, err
	}
	w, err := matrix.NewDense(len(x[0]), 1)
	if err != nil {
		return regressResult{}, err
	}
	base, err := igd.NewState(w, a.cfg.Hyper())
	if err != nil {
		return regressResult{}, err
	}

	rows := make([]rowTuple, len(x))
	for i := range x {
		rows[i] = rowTuple{IndVar: x[i], DepVar: y[i], Weight: 1}
	}
	parts, err := round.Split(rows, a.cfg.PartitionCount())
	if err != nil {
		return regressResult{}, err
	}

	var step func(*state) (*state, error)
	if miniBatch {
		batches, err := batchPartitions(parts)
		if err != nil {
			return regressResult{}, err
		}
		step = func(base *state) (*state, error) {
			agg := igd.BatchAggregate[model, []float64, float64]{Engine: e, Base: base}
			out, err := round.Run(ctx, a.runner, wrap[*state, igd.BatchTuple](a, agg), batches)
			return out.State, err
		}
	} else {
		step = func(base *state) (*state, error) {
			agg := igd.Aggregate[model, []float64, float64]{Engine: e, Base: base}
			out, err := round.Run(ctx, a.runner, wrap[*state, rowTuple](a, agg), parts)
			return out.State, err
		}
	}

	res := regressResult{
		Task:      a.cfg.Regress.Task,
		Rows:      len(rows),
		MiniBatch: miniBatch,
	}
	for res.Rounds < a.cfg.MaxRounds {
		next, err := step(base)
		if err != nil {
			return res, err
		}
		base = next
		res.Rounds++
		res.Losses = append(res.Losses, base.Task.Loss)
	}
	a.logger.Info("Regression finished",
		slog.String("task", res.Task),
		slog.Int("rounds", res.Rounds),
		slog.Int("rows", res.Rows),
	)
	res.Model = append([]float64(nil), base.Task.Model.Data()...)

	return res, nil
}

// batchPartitions turns every non-empty partition into a single BatchTuple,
// so each partition is folded by one TransitionInMiniBatch call.
func batchPartitions(parts [][]rowTuple) ([][]igd.BatchTuple, error) {
	out := make([][]igd.BatchTuple, len(parts))
	for p, rows := range parts {
		if len(rows) == 0 {
			continue
		}
		features := len(rows[0].IndVar)
		xs := make([]float64, 0, len(rows)*features)
		ys := make([]float64, 0, len(rows))
		for _, r := range rows {
			xs = append(xs, r.IndVar...)
			ys = append(ys, r.DepVar)
		}
		x, err := matrix.NewDenseFrom(len(rows), features, xs)
		if err != nil {
			return nil, err
		}
		y, err := matrix.NewDenseFrom(len(rows), 1, ys)
		if err != nil {
			return nil, err
		}
		out[p] = []igd.BatchTuple{{IndVar: x, DepVar: y}}
	}

	return out, nil
}
