// SPDX-License-Identifier: MIT

package round

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/katalvlaran/lvlagg/round"

// Runner executes rounds. It is safe for concurrent use.
type Runner struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	topology Topology
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the round logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithTracer sets the tracer used for round, fold, merge and final spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithTopology sets the merge topology.
func WithTopology(t Topology) Option {
	return func(r *Runner) { r.topology = t }
}

// NewRunner creates a Runner. Without options it logs nowhere, traces with a
// no-op tracer and merges sequentially.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
		topology: Sequential,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Topology returns the merge topology of r.
func (r *Runner) Topology() Topology { return r.topology }

// Result is the outcome of one round.
type Result[S any] struct {
	ID         string
	State      S
	Partitions int
	Rows       int
	Duration   time.Duration
}

// Run executes one round of agg over partitions.
//
// Implementation:
//   - Stage 1: fold every partition in its own goroutine (errgroup); the
//     context is checked between rows.
//   - Stage 2: merge the partial states with the runner's topology.
//   - Stage 3: Final on the surviving state.
//
// The first error cancels the remaining folds and is returned; no partial
// result is produced.
func Run[S, R any](ctx context.Context, r *Runner, agg Aggregate[S, R], partitions [][]R) (res Result[S], err error) {
	res.ID = uuid.NewString()
	res.Partitions = len(partitions)
	for _, p := range partitions {
		res.Rows += len(p)
	}

	ctx, span := r.tracer.Start(ctx, "round", trace.WithAttributes(
		attribute.String("round_id", res.ID),
		attribute.Int("partitions", res.Partitions),
		attribute.Int("rows", res.Rows),
		attribute.String("topology", r.topology.String()),
	))
	defer span.End()

	defer func(begin time.Time) {
		res.Duration = time.Since(begin)
		args := []any{
			slog.String("round_id", res.ID),
			slog.String("duration", res.Duration.String()),
			slog.Int("partitions", res.Partitions),
			slog.Int("rows", res.Rows),
			slog.String("topology", r.topology.String()),
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			args = append(args, slog.Any("error", err))
			r.logger.Warn("Round failed", args...)

			return
		}
		r.logger.Info("Round completed successfully", args...)
	}(time.Now())

	if len(partitions) == 0 {
		return res, ErrNoPartitions
	}

	states, err := fold(ctx, r, agg, partitions)
	if err != nil {
		return res, err
	}

	var merged S
	switch r.topology {
	case Tree:
		merged, err = mergeTree(ctx, r, agg, states)
	default:
		merged, err = mergeSequential(ctx, r, agg, states)
	}
	if err != nil {
		return res, err
	}

	_, fspan := r.tracer.Start(ctx, "final")
	res.State, err = agg.Final(merged)
	fspan.End()

	return res, err
}

// fold runs one goroutine per partition. Each state is owned by its
// goroutine until Wait returns.
func fold[S, R any](ctx context.Context, r *Runner, agg Aggregate[S, R], partitions [][]R) ([]S, error) {
	states := make([]S, len(partitions))
	g, ctx := errgroup.WithContext(ctx)
	for i, rows := range partitions {
		g.Go(func() error {
			_, span := r.tracer.Start(ctx, "fold", trace.WithAttributes(
				attribute.Int("partition", i),
				attribute.Int("rows", len(rows)),
			))
			defer span.End()

			s, err := agg.Init()
			if err != nil {
				return err
			}
			for _, row := range rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				if s, err = agg.Transition(s, row); err != nil {
					return err
				}
			}
			states[i] = s
			r.logger.Debug("Partition folded", slog.Int("partition", i), slog.Int("rows", len(rows)))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return states, nil
}

func mergeSequential[S, R any](ctx context.Context, r *Runner, agg Aggregate[S, R], states []S) (S, error) {
	_, span := r.tracer.Start(ctx, "merge", trace.WithAttributes(attribute.Int("states", len(states))))
	defer span.End()

	acc := states[0]
	var err error
	for _, s := range states[1:] {
		if acc, err = agg.Merge(acc, s); err != nil {
			return acc, err
		}
	}

	return acc, nil
}

// mergeTree halves the level until one state is left. An odd state at the
// end of a level is carried to the next level unchanged.
func mergeTree[S, R any](ctx context.Context, r *Runner, agg Aggregate[S, R], states []S) (S, error) {
	level := states
	for depth := 0; len(level) > 1; depth++ {
		_, span := r.tracer.Start(ctx, "merge", trace.WithAttributes(
			attribute.Int("depth", depth),
			attribute.Int("states", len(level)),
		))
		next := make([]S, (len(level)+1)/2)
		var g errgroup.Group
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next[i/2] = level[i]
				continue
			}
			g.Go(func() error {
				m, err := agg.Merge(level[i], level[i+1])
				next[i/2] = m
				return err
			})
		}
		err := g.Wait()
		span.End()
		if err != nil {
			var zero S
			return zero, err
		}
		level = next
	}

	return level[0], nil
}
