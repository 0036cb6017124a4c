package session

import (
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"github.com/google/uuid"
)

// Session is the tracking state machine: Idle until started, Active while
// accepting samples and ticks, Stopped with its last derived stats frozen.
// Distance accumulates incrementally, one haversine hop per accepted sample,
// so ingestion stays O(1) regardless of session length. Session is not
// goroutine safe; the Service serializes access.
type Session struct {
	id        string
	state     State
	origin    geo.Coordinate
	startedAt time.Time

	samples            []Sample
	distanceMiles      float64
	elapsedSeconds     float64
	paceMinPerMile     float64
	nextMilestoneMiles float64
}

func New() *Session {
	return &Session{state: StateIdle}
}

// Start resets the session and transitions it to Active. Starting an already
// Active session is a no-op returning false, so a double start can never
// produce two accumulation streams or wipe progress.
func (s *Session) Start(origin geo.Coordinate) bool {
	if s.state == StateActive {
		return false
	}
	s.id = uuid.NewString()
	s.state = StateActive
	s.origin = origin
	s.startedAt = time.Now()
	s.samples = nil
	s.distanceMiles = 0
	s.elapsedSeconds = 0
	s.paceMinPerMile = 0
	s.nextMilestoneMiles = FirstMilestoneMiles
	return true
}

// Ingest appends a sample and advances cumulative distance by the hop from
// the previous sample. Samples with out-of-range coordinates, or arriving
// while the session is not Active, are dropped silently and leave state
// untouched. Returns one notification per milestone threshold the new
// distance crossed.
func (s *Session) Ingest(sample Sample) []Notification {
	if s.state != StateActive {
		return nil
	}
	if err := sample.Coordinate().Validate(); err != nil {
		return nil
	}
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = time.Now()
	}

	if n := len(s.samples); n > 0 {
		s.distanceMiles += geo.DistanceMiles(s.samples[n-1].Coordinate(), sample.Coordinate())
	}
	s.samples = append(s.samples, sample)

	crossed, next := CrossedMilestones(s.distanceMiles, s.nextMilestoneMiles)
	s.nextMilestoneMiles = next

	notifications := make([]Notification, 0, len(crossed))
	for _, miles := range crossed {
		notifications = append(notifications, Notification{
			SessionID: s.id,
			Miles:     miles,
			Message:   milestoneMessage(miles),
		})
	}
	return notifications
}

// Tick records elapsed time and rederives pace. Pace stays at the zero
// sentinel until both elapsed time and distance are positive.
func (s *Session) Tick(elapsedSeconds float64) {
	if s.state != StateActive {
		return
	}
	s.elapsedSeconds = elapsedSeconds
	if s.elapsedSeconds > 0 && s.distanceMiles > 0 {
		s.paceMinPerMile = (s.elapsedSeconds / 60) / s.distanceMiles
	}
}

// Stop freezes derived stats. Only meaningful from Active; otherwise a no-op.
func (s *Session) Stop() bool {
	if s.state != StateActive {
		return false
	}
	s.state = StateStopped
	return true
}

func (s *Session) ID() string           { return s.id }
func (s *Session) State() State         { return s.state }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Track returns the accepted sample path as renderable line geometry.
func (s *Session) Track() []geo.Coordinate {
	track := make([]geo.Coordinate, len(s.samples))
	for i, sample := range s.samples {
		track[i] = sample.Coordinate()
	}
	return track
}

func (s *Session) Snapshot() Stats {
	return Stats{
		SessionID:          s.id,
		State:              s.state,
		DistanceMiles:      s.distanceMiles,
		ElapsedSeconds:     s.elapsedSeconds,
		PaceMinPerMile:     s.paceMinPerMile,
		NextMilestoneMiles: s.nextMilestoneMiles,
		SampleCount:        len(s.samples),
	}
}
