// Package race runs an operation against a fixed deadline.
//
// The operation is never cancelled by the deadline: it keeps running on a
// context detached from the caller's cancellation and its late result is
// dropped. Any side effect it performs still happens.
package race

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrTimeout = errors.New("Request timeout, please try again") //nolint:stylecheck

var timeoutsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "eatnow",
	Name:      "race_timeouts_total",
	Help:      "Operations that lost against their deadline.",
}, []string{"op"})

type result[T any] struct {
	val T
	err error
}

// Timeout returns whatever settles first: fn's result or ErrTimeout after d.
// Cancelling ctx only releases the caller; fn keeps running.
func Timeout[T any](ctx context.Context, name string, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ch := make(chan result[T], 1)

	go func() {
		v, err := fn(context.WithoutCancel(ctx))
		ch <- result[T]{val: v, err: err}
	}()

	t := time.NewTimer(d)
	defer t.Stop()

	var zero T

	select {
	case r := <-ch:
		return r.val, r.err
	case <-t.C:
		timeoutsMetric.WithLabelValues(name).Inc()
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
