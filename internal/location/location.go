package location

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kdudkov/eatnow/pkg/gpsd"
	"github.com/kdudkov/eatnow/pkg/model"
)

const (
	defaultFixTimeout = time.Second * 10
	defaultMaxFixAge  = time.Minute
)

type Locator interface {
	CurrentPosition(ctx context.Context) (*model.Position, error)
}

// Runner is a Locator with background work of its own.
type Runner interface {
	Run(ctx context.Context)
}

// Static always reports the same coordinates, stamped with the current time.
type Static struct {
	lat float64
	lon float64
}

func NewStatic(lat, lon float64) *Static {
	return &Static{lat: lat, lon: lon}
}

func (s *Static) CurrentPosition(_ context.Context) (*model.Position, error) {
	return model.NewPos(s.lat, s.lon), nil
}

// Gpsd reports the last fix seen by Run while it is younger than maxAge,
// otherwise it asks the daemon for a fresh one.
type Gpsd struct {
	client  *gpsd.GpsdClient
	timeout time.Duration
	maxAge  time.Duration
	last    atomic.Pointer[model.Position]
}

func NewGpsd(addr string, logger *slog.Logger) *Gpsd {
	return &Gpsd{client: gpsd.New(addr, logger), timeout: defaultFixTimeout, maxAge: defaultMaxFixAge}
}

// Run follows the gpsd stream until ctx is done.
func (g *Gpsd) Run(ctx context.Context) {
	g.client.Listen(ctx, func(p *model.Position) {
		g.last.Store(p)
	})
}

func (g *Gpsd) CurrentPosition(ctx context.Context) (*model.Position, error) {
	if p := g.last.Load(); p != nil && time.Since(p.Time) <= g.maxAge {
		res := *p
		return &res, nil
	}

	ctx1, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	return g.client.Fix(ctx1)
}

func New(source, gpsdAddr string, lat, lon float64) (Locator, error) {
	switch source {
	case "", "static":
		return NewStatic(lat, lon), nil
	case "gpsd":
		return NewGpsd(gpsdAddr, slog.Default().With("logger", "gpsd")), nil
	default:
		return nil, fmt.Errorf("unknown location source %q", source)
	}
}
