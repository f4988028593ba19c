package gpsd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/kdudkov/eatnow/pkg/model"
)

const (
	DefaultAddress = "localhost:2947"
	DialTimeout    = time.Millisecond * 500

	// modes 2 and 3 are 2D and 3D fixes
	minFixMode = 2
)

var ErrNoFix = errors.New("no gps fix")

type BaseMsg struct {
	Class string `json:"class"`
}

type TPVMsg struct {
	Class  string    `json:"class"`
	Device string    `json:"device"`
	Mode   int       `json:"mode"`
	Time   time.Time `json:"time"`
	Lat    float64   `json:"lat"`
	Lon    float64   `json:"lon"`
	Alt    float64   `json:"alt"`
	Speed  float64   `json:"speed"`
	Track  float64   `json:"track"`
}

func (m *TPVMsg) Position() *model.Position {
	t := m.Time
	if t.IsZero() {
		t = time.Now()
	}

	return &model.Position{Lat: m.Lat, Lon: m.Lon, Time: t}
}

type VERSIONMsg struct {
	Class   string `json:"class"`
	Release string `json:"release"`
	Rev     string `json:"rev"`
}

type GpsdClient struct {
	addr   string
	logger *slog.Logger
}

func New(addr string, logger *slog.Logger) *GpsdClient {
	if logger == nil {
		logger = slog.Default()
	}

	c := &GpsdClient{
		addr:   DefaultAddress,
		logger: logger,
	}

	if addr != "" {
		c.addr = addr
	}

	return c
}

func (c *GpsdClient) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: DialTimeout}

	conn, err := d.DialContext(ctx, "tcp4", c.addr)
	if err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintf(conn, "?WATCH={\"enable\":true,\"json\":true}"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Fix waits for the first usable position report on a fresh connection.
func (c *GpsdClient) Fix(ctx context.Context) (*model.Position, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("gpsd dial: %w", err)
	}

	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(dl)
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.SetReadDeadline(time.Now()) })
	defer stop()

	var res *model.Position

	err = c.read(bufio.NewReader(conn), func(m *TPVMsg) bool {
		if m.Mode < minFixMode {
			return true
		}

		res = m.Position()

		return false
	})

	if res != nil {
		return res, nil
	}

	if err == nil {
		return nil, ErrNoFix
	}

	return nil, fmt.Errorf("%w: %w", ErrNoFix, err)
}

// Listen reports every fix until ctx is done, reconnecting with a growing delay.
func (c *GpsdClient) Listen(ctx context.Context, cb func(p *model.Position)) {
	timeout := time.Second * 5

	for ctx.Err() == nil {
		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Error("dial error", "error", err)

			select {
			case <-time.After(timeout):
			case <-ctx.Done():
				c.logger.Error("stop connection attempts")
				return
			}

			if timeout < time.Minute {
				timeout *= 2
			}

			continue
		}

		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })

		err = c.read(bufio.NewReader(conn), func(m *TPVMsg) bool {
			if m.Mode >= minFixMode && cb != nil {
				cb(m.Position())
			}

			return true
		})

		stop()
		_ = conn.Close()

		if err != nil && ctx.Err() == nil {
			c.logger.Error("error", "error", err)
		}
	}
}

// read feeds TPV reports to f until it returns false or the stream fails.
func (c *GpsdClient) read(r *bufio.Reader, f func(m *TPVMsg) bool) error {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return err
		}

		data := []byte(line)

		var msg BaseMsg

		if err1 := json.Unmarshal(data, &msg); err1 != nil {
			c.logger.Debug("bad json: " + line)
			return fmt.Errorf("JSON decode error: %w", err1)
		}

		switch msg.Class {
		case "TPV":
			r := new(TPVMsg)
			if err1 := json.Unmarshal(data, r); err1 != nil {
				c.logger.Error("JSON decode error", "error", err1)
				continue
			}

			if !f(r) {
				return nil
			}
		case "VERSION":
			r := new(VERSIONMsg)
			if err1 := json.Unmarshal(data, r); err1 == nil {
				c.logger.Info(fmt.Sprintf("got version %s, rev. %s", r.Release, r.Rev))
			}
		}
	}
}
