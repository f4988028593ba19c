package log

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shellRequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eatnow",
		Subsystem: "shell",
		Name:      "request_duration_seconds",
		Help:      "The latency of the local shell requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"api"})

	shellRequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eatnow",
		Subsystem: "shell",
		Name:      "requests_total",
		Help:      "Number of the local shell requests.",
	}, []string{"api", "route", "method", "code"})
)

type LoggerConfig struct {
	Name       string
	UserGetter func(c *fiber.Ctx) string
	DoMetrics  bool
	SkipPaths  []string
}

func NewFiberLogger(conf *LoggerConfig) fiber.Handler {
	if conf == nil {
		conf = &LoggerConfig{Name: "shell"}
	}

	skip := make(map[string]bool, len(conf.SkipPaths))
	for _, p := range conf.SkipPaths {
		skip[p] = true
	}

	logger := slog.Default().With(slog.String("logger", conf.Name))

	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		wt := time.Since(start)

		if conf.DoMetrics {
			metrics(conf.Name, c, wt)
		}

		if skip[c.Path()] {
			return chainErr
		}

		status := c.Response().StatusCode()
		if chainErr != nil {
			// the app error handler has not run yet
			status = fiber.StatusInternalServerError

			if e, ok := chainErr.(*fiber.Error); ok {
				status = e.Code
			}
		}

		attrs := []any{
			slog.Int("status", status),
			slog.Int64("ms", wt.Milliseconds()),
		}

		if conf.UserGetter != nil {
			attrs = append(attrs, slog.String("user", conf.UserGetter(c)))
		}

		if chainErr != nil {
			attrs = append(attrs, slog.Any("error", chainErr))
		}

		msg := fmt.Sprintf("%s %s", c.Method(), c.Path())

		switch {
		case status < 400:
			logger.Debug(msg, attrs...)
		case status < 500:
			logger.Info(msg, attrs...)
		default:
			logger.Warn(msg, attrs...)
		}

		return chainErr
	}
}

func metrics(api string, ctx *fiber.Ctx, t time.Duration) {
	route := ctx.Path()
	if r := ctx.Route(); r != nil && r.Path != "" {
		route = r.Path
	}

	shellRequestsDuration.With(prometheus.Labels{"api": api}).Observe(t.Seconds())

	shellRequestsCount.With(prometheus.Labels{
		"api":    api,
		"route":  route,
		"method": ctx.Method(),
		"code":   strconv.Itoa(ctx.Response().StatusCode()),
	}).Inc()
}
