package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot(t *testing.T) {
	start := time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)
	s := NewTimeSlot(start, time.Hour)

	assert.Equal(t, "2024-12-31-23-30", s.Start)
	assert.Equal(t, "2025-01-01-00-30", s.End)

	st, en, err := s.Times(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, en.Sub(st))

	_, _, err = (&TimeSlot{Start: "bad", End: s.End}).Times(time.UTC)
	require.Error(t, err)
}

func TestLocationUpload(t *testing.T) {
	p := &Position{Lat: 1.5, Lon: -2.5, Time: time.UnixMilli(1700000000123)}
	u := NewLocationUpload("3", p)

	assert.Equal(t, "3", u.UID)
	assert.Equal(t, "1700000000123", u.LastUpdateTime)
	assert.Equal(t, -2.5, u.Longitude)
}
