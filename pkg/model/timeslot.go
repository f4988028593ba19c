package model

import (
	"fmt"
	"time"
)

const TimeSlotLayout = "2006-01-02-15-04"

type TimeSlot struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

func NewTimeSlot(start time.Time, d time.Duration) *TimeSlot {
	return &TimeSlot{
		Start: start.Format(TimeSlotLayout),
		End:   start.Add(d).Format(TimeSlotLayout),
	}
}

func (s *TimeSlot) Times(loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(TimeSlotLayout, s.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad start: %w", err)
	}

	end, err := time.ParseInLocation(TimeSlotLayout, s.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad end: %w", err)
	}

	return start, end, nil
}
