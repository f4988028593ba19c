package model

import (
	"strconv"
	"time"
)

type Position struct {
	Time time.Time
	Lat  float64
	Lon  float64
}

func NewPos(lat, lon float64) *Position {
	return &Position{Lat: lat, Lon: lon, Time: time.Now()}
}

type LocationUpload struct {
	UID            string  `json:"uid"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LastUpdateTime string  `json:"lastUpdateTime"`
}

// NewLocationUpload stamps the fix time as epoch milliseconds.
func NewLocationUpload(uid string, p *Position) *LocationUpload {
	return &LocationUpload{
		UID:            uid,
		Latitude:       p.Lat,
		Longitude:      p.Lon,
		LastUpdateTime: strconv.FormatInt(p.Time.UnixMilli(), 10),
	}
}
