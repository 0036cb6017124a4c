package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Lawmlor123/run-app/internal/location"
	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"go.uber.org/zap"
)

// ErrNoSession reports that no run has been started yet.
var ErrNoSession = errors.New("no tracking session")

// Broadcaster is the sink for live payloads; satisfied by *stream.Hub.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

// Service owns the one live tracking session. It is the only writer of
// session state: the location feed and the wall-clock ticker are independent
// producers whose events are serialized through the service mutex, so they
// can interleave in any order and any ratio. On start the service subscribes
// to the location feed and launches a 1-second ticker; both are released on
// stop and before any restart, so an orphaned subscription can never keep
// accumulating into a new run.
type Service struct {
	log       *zap.Logger
	hub       Broadcaster
	locations *location.Service

	mu       sync.Mutex
	sess     *Session
	watchID  int
	tickDone chan struct{}
}

func NewService(log *zap.Logger, hub Broadcaster, locations *location.Service) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log, hub: hub, locations: locations}
}

// StartRun begins a new session at origin. A nil origin means "wherever the
// device is now": the location feed is asked for the current position and
// its fallback default is used when none arrives in time. Starting while a
// run is already active returns the active run's stats unchanged.
func (s *Service) StartRun(ctx context.Context, origin *geo.Coordinate) (Stats, error) {
	if origin == nil {
		coord, err := s.locations.Current(ctx)
		if err != nil {
			s.log.Warn("starting run from fallback location", zap.Error(err))
		}
		origin = &coord
	} else if err := origin.Validate(); err != nil {
		return Stats{}, err
	}

	s.mu.Lock()
	if s.sess != nil && s.sess.State() == StateActive {
		snap := s.sess.Snapshot()
		s.mu.Unlock()
		return snap, nil
	}

	s.releaseLocked()

	s.sess = New()
	s.sess.Start(*origin)
	snap := s.sess.Snapshot()
	startedAt := s.sess.StartedAt()
	sessionID := s.sess.ID()

	s.watchID = s.locations.Watch(func(fix location.Fix) {
		s.ingest(Sample{Lat: fix.Lat, Lng: fix.Lng, RecordedAt: fix.RecordedAt})
	})

	done := make(chan struct{})
	s.tickDone = done
	go s.runTicker(done, startedAt)
	s.mu.Unlock()

	s.log.Info("tracking session started",
		zap.String("session_id", sessionID),
		zap.Float64("lat", origin.Lat),
		zap.Float64("lng", origin.Lng),
	)
	s.broadcast(snap)
	return snap, nil
}

// StopRun freezes the session and releases the feed subscription and ticker.
func (s *Service) StopRun() (Stats, error) {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return Stats{}, ErrNoSession
	}
	s.sess.Stop()
	s.releaseLocked()
	snap := s.sess.Snapshot()
	s.mu.Unlock()

	s.log.Info("tracking session stopped",
		zap.String("session_id", snap.SessionID),
		zap.Float64("distance_miles", snap.DistanceMiles),
	)
	s.broadcast(snap)
	return snap, nil
}

// Stats returns the current derived view of the session.
func (s *Service) Stats() (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return Stats{}, ErrNoSession
	}
	return s.sess.Snapshot(), nil
}

// Track returns the session's accepted path for rendering.
func (s *Service) Track() ([]geo.Coordinate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, ErrNoSession
	}
	return s.sess.Track(), nil
}

// releaseLocked tears down the location subscription and ticker of the
// current session. Safe to call repeatedly; must hold s.mu.
func (s *Service) releaseLocked() {
	if s.watchID != 0 {
		s.locations.ClearWatch(s.watchID)
		s.watchID = 0
	}
	if s.tickDone != nil {
		close(s.tickDone)
		s.tickDone = nil
	}
}

func (s *Service) ingest(sample Sample) {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return
	}
	notifications := s.sess.Ingest(sample)
	snap := s.sess.Snapshot()
	s.mu.Unlock()

	s.broadcast(snap)
	for _, n := range notifications {
		s.notify(n)
	}
}

func (s *Service) runTicker(done <-chan struct{}, startedAt time.Time) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.tick(time.Since(startedAt).Seconds())
		}
	}
}

func (s *Service) tick(elapsedSeconds float64) {
	s.mu.Lock()
	if s.sess == nil || s.sess.State() != StateActive {
		s.mu.Unlock()
		return
	}
	s.sess.Tick(elapsedSeconds)
	snap := s.sess.Snapshot()
	s.mu.Unlock()

	s.broadcast(snap)
}

func (s *Service) broadcast(snap Stats) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		Stats
	}{Type: "stats", Stats: snap})
	if err != nil {
		return
	}
	s.hub.Broadcast(snap.SessionID, payload)
}

// notify hands a milestone alert to the speech/alert sink. Fire-and-forget.
func (s *Service) notify(n Notification) {
	s.log.Info("milestone reached",
		zap.String("session_id", n.SessionID),
		zap.Float64("miles", n.Miles),
	)
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(struct {
		Type string `json:"type"`
		Notification
	}{Type: "milestone", Notification: n})
	if err != nil {
		return
	}
	s.hub.Broadcast(n.SessionID, payload)
}
