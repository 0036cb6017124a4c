package session

import (
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
)

type State string

const (
	StateIdle    State = "idle"
	StateActive  State = "active"
	StateStopped State = "stopped"
)

// Sample is one accepted position fix inside a session.
type Sample struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (s Sample) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: s.Lat, Lng: s.Lng}
}

// Stats is the derived, read-only view of a session that the presentation
// layer renders. All fields are computed by the engine; none are settable.
type Stats struct {
	SessionID          string  `json:"session_id"`
	State              State   `json:"state"`
	DistanceMiles      float64 `json:"distance_miles"`
	ElapsedSeconds     float64 `json:"elapsed_seconds"`
	PaceMinPerMile     float64 `json:"pace_min_per_mile"`
	NextMilestoneMiles float64 `json:"next_milestone_miles"`
	SampleCount        int     `json:"sample_count"`
}

// Notification is a milestone alert handed to the speech/alert sink.
type Notification struct {
	SessionID string  `json:"session_id"`
	Miles     float64 `json:"miles"`
	Message   string  `json:"message"`
}
