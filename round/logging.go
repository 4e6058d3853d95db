// SPDX-License-Identifier: MIT

package round

import (
	"log/slog"
	"time"
)

var _ Aggregate[int, int] = (*loggingMiddleware[int, int])(nil)

type loggingMiddleware[S, R any] struct {
	logger *slog.Logger
	agg    Aggregate[S, R]
}

// Logging wraps agg so every phase call is logged. Successful transitions
// log at debug level only; they run once per row.
func Logging[S, R any](logger *slog.Logger, agg Aggregate[S, R]) Aggregate[S, R] {
	return &loggingMiddleware[S, R]{
		logger: logger,
		agg:    agg,
	}
}

func (lm *loggingMiddleware[S, R]) Init() (s S, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Init failed", args...)

			return
		}
		lm.logger.Debug("Init completed successfully", args...)
	}(time.Now())

	return lm.agg.Init()
}

func (lm *loggingMiddleware[S, R]) Transition(s S, r R) (out S, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Transition failed", args...)

			return
		}
		lm.logger.Debug("Transition completed successfully", args...)
	}(time.Now())

	return lm.agg.Transition(s, r)
}

func (lm *loggingMiddleware[S, R]) Merge(left, right S) (out S, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Merge failed", args...)

			return
		}
		lm.logger.Info("Merge completed successfully", args...)
	}(time.Now())

	return lm.agg.Merge(left, right)
}

func (lm *loggingMiddleware[S, R]) Final(s S) (out S, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Final failed", args...)

			return
		}
		lm.logger.Info("Final completed successfully", args...)
	}(time.Now())

	return lm.agg.Final(s)
}
