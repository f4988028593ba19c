// Package dateselect turns a day and hour choice into a stored time slot.
package dateselect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kdudkov/eatnow/internal/storage"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/model"
)

const (
	DayToday    = "today"
	DayTomorrow = "tomorrow"

	DefaultDay  = DayTomorrow
	DefaultHour = "13:30"

	hourLayout = "15:04"
	slotLength = time.Hour
)

var (
	ErrPastTime    = errors.New("Please do not select past time.") //nolint:stylecheck
	ErrInvalidHour = errors.New("invalid hour, HH:mm expected")
	ErrInvalidDay  = errors.New("invalid day, today or tomorrow expected")
)

type Selector struct {
	mx   sync.Mutex
	day  string
	hour string

	store  storage.Storage
	toast  toast.Messenger
	clock  func() time.Time
	logger *slog.Logger
}

func New(store storage.Storage, messenger toast.Messenger) *Selector {
	return &Selector{
		day:    DefaultDay,
		hour:   DefaultHour,
		store:  store,
		toast:  messenger,
		clock:  time.Now,
		logger: slog.Default().With("logger", "dateselect"),
	}
}

// WithClock replaces the time source.
func (s *Selector) WithClock(clock func() time.Time) *Selector {
	s.clock = clock

	return s
}

func (s *Selector) Day() string {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.day
}

func (s *Selector) Hour() string {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.hour
}

func (s *Selector) SetDay(day string) error {
	if day != DayToday && day != DayTomorrow {
		return fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	s.mx.Lock()
	s.day = day
	s.mx.Unlock()

	return nil
}

func (s *Selector) SetHour(hour string) error {
	if _, err := parseHour(hour); err != nil {
		return err
	}

	s.mx.Lock()
	s.hour = hour
	s.mx.Unlock()

	return nil
}

// Confirm stores a one hour slot starting at the chosen hour and returns it.
// A time already past today is rejected and nothing is stored.
func (s *Selector) Confirm(ctx context.Context) (*model.TimeSlot, error) {
	s.mx.Lock()
	day, hour := s.day, s.hour
	s.mx.Unlock()

	h, err := parseHour(hour)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	anchor := now

	switch day {
	case DayTomorrow:
		anchor = now.AddDate(0, 0, 1)
	case DayToday:
		// zero padded HH:mm compare in chronological order
		if now.Format(hourLayout) > hour {
			s.toast.PresentToast(ErrPastTime.Error())
			return nil, toast.Presented(ErrPastTime)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}

	start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), h.Hour(), h.Minute(), 0, 0, now.Location())
	slot := model.NewTimeSlot(start, slotLength)

	if err := s.store.Set(ctx, storage.TimeSlotKey, slot); err != nil {
		return nil, fmt.Errorf("store time slot: %w", err)
	}

	s.logger.Info("time slot selected", slog.String("start", slot.Start), slog.String("end", slot.End))

	return slot, nil
}

// Current is the stored slot, nil when nothing was confirmed yet.
func (s *Selector) Current(ctx context.Context) (*model.TimeSlot, error) {
	slot := new(model.TimeSlot)

	ok, err := s.store.Get(ctx, storage.TimeSlotKey, slot)
	if err != nil {
		return nil, fmt.Errorf("read time slot: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return slot, nil
}

func parseHour(hour string) (time.Time, error) {
	if len(hour) != len(hourLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidHour, hour)
	}

	t, err := time.Parse(hourLayout, hour)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidHour, hour)
	}

	return t, nil
}
