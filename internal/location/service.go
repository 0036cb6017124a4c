package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"go.uber.org/zap"
)

// ErrUnavailable reports that no position fix arrived in time and the
// configured fallback coordinate was returned instead. Recoverable: callers
// get a usable coordinate either way.
var ErrUnavailable = errors.New("location unavailable, using fallback")

// Service is the device-location boundary. The device pushes raw fixes in;
// the tracking engine watches the feed through explicit subscription handles
// that can be cleared idempotently.
type Service struct {
	log      *zap.Logger
	fallback geo.Coordinate
	timeout  time.Duration

	mu       sync.Mutex
	watchers map[int]func(Fix)
	nextID   int
	latest   *Fix
	waiters  []chan Fix
}

func NewService(log *zap.Logger, fallback geo.Coordinate, timeout time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		log:      log,
		fallback: fallback,
		timeout:  timeout,
		watchers: map[int]func(Fix){},
	}
}

// Push accepts a raw fix, remembers it as the latest known position, wakes
// any Current waiters, and fans it out to all watch subscriptions.
func (s *Service) Push(fix Fix) error {
	if err := fix.Coordinate().Validate(); err != nil {
		return err
	}
	if fix.RecordedAt.IsZero() {
		fix.RecordedAt = time.Now()
	}

	s.mu.Lock()
	s.latest = &fix
	waiters := s.waiters
	s.waiters = nil
	callbacks := make([]func(Fix), 0, len(s.watchers))
	for _, fn := range s.watchers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, ch := range waiters {
		ch <- fix
	}
	for _, fn := range callbacks {
		fn(fix)
	}
	return nil
}

// Watch subscribes fn to every future fix and returns a handle for ClearWatch.
func (s *Service) Watch(fn func(Fix)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	return id
}

// ClearWatch cancels a subscription. Clearing an unknown or already-cleared
// handle is a no-op.
func (s *Service) ClearWatch(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers, id)
}

// Current returns the latest known coordinate, waiting up to the configured
// timeout for a first fix. On timeout it returns the fallback coordinate
// together with ErrUnavailable.
func (s *Service) Current(ctx context.Context) (geo.Coordinate, error) {
	s.mu.Lock()
	if s.latest != nil {
		coord := s.latest.Coordinate()
		s.mu.Unlock()
		return coord, nil
	}
	ch := make(chan Fix, 1)
	s.waiters = append(s.waiters, ch)
	s.mu.Unlock()

	select {
	case fix := <-ch:
		return fix.Coordinate(), nil
	case <-time.After(s.timeout):
	case <-ctx.Done():
	}

	s.dropWaiter(ch)
	s.log.Warn("no position fix received, falling back to default location",
		zap.Float64("lat", s.fallback.Lat),
		zap.Float64("lng", s.fallback.Lng),
	)
	return s.fallback, ErrUnavailable
}

func (s *Service) dropWaiter(ch chan Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.waiters {
		if w == ch {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return
		}
	}
}
