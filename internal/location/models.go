package location

import (
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
)

// Fix is a single raw position report from the device. Fixes arrive in
// submission order, which is not necessarily monotonic in recorded time.
type Fix struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	AccuracyM  float64   `json:"accuracy_m,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (f Fix) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: f.Lat, Lng: f.Lng}
}
