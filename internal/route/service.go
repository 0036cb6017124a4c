package route

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
	"go.uber.org/zap"
)

const (
	metersPerMile = 1609.34

	// minLengthMeters is the shortest loop the round-trip algorithm can
	// produce reliably; shorter targets are rejected before any request.
	minLengthMeters = 1600.0

	defaultCandidateCount = 4
	maxCandidateCount     = 8
)

var (
	ErrRouteTooShort    = errors.New("target distance below 1 mile minimum")
	ErrGenerationStale  = errors.New("route generation superseded by a newer request")
	ErrNoCandidates     = errors.New("no route candidates generated yet")
	ErrUnknownCandidate = errors.New("unknown candidate id")
)

// Service generates alternate round-trip candidates and tracks which one the
// user picked. Each Generate call supersedes the previous one: in-flight
// provider requests of the old batch are cancelled and their late results
// are discarded by a generation counter, so a stale batch can never
// overwrite a newer candidate set.
type Service struct {
	log      *zap.Logger
	provider Provider
	cache    *Cache

	mu         sync.Mutex
	candidates []Candidate
	generation uint64
	cancelPrev context.CancelFunc
}

func NewService(log *zap.Logger, provider Provider, cache *Cache) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log, provider: provider, cache: cache}
}

// Generate requests count round-trip loops of targetMiles from origin, one
// provider call per variation seed, all issued concurrently. All-or-nothing:
// any single failure fails the whole batch and discards partial results.
// On success the new set replaces the previous one with candidate 0 selected.
func (s *Service) Generate(ctx context.Context, origin geo.Coordinate, targetMiles float64, count int) ([]Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	lengthMeters := targetMiles * metersPerMile
	if lengthMeters < minLengthMeters {
		return nil, fmt.Errorf("%w: %.2f miles", ErrRouteTooShort, targetMiles)
	}
	if count <= 0 {
		count = defaultCandidateCount
	}
	if count > maxCandidateCount {
		count = maxCandidateCount
	}

	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	s.generation++
	gen := s.generation
	batchCtx, cancel := context.WithCancel(ctx)
	s.cancelPrev = cancel
	s.mu.Unlock()
	defer cancel()

	paths := make([][]geo.Coordinate, count)
	errs := make([]error, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			path, err := s.fetch(batchCtx, origin, lengthMeters, seed)
			paths[seed] = path
			errs[seed] = err
			if err != nil {
				// fail fast: no point finishing the rest of the batch
				cancel()
			}
		}(i)
	}
	wg.Wait()

	for seed, err := range errs {
		if err != nil {
			s.log.Warn("route candidate request failed",
				zap.Int("seed", seed),
				zap.Error(err),
			)
			return nil, fmt.Errorf("candidate %d: %w", seed, err)
		}
	}

	candidates := make([]Candidate, count)
	for i, path := range paths {
		candidates[i] = Candidate{ID: i, Geometry: path, Selected: i == 0}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return nil, ErrGenerationStale
	}
	s.candidates = candidates
	return copyCandidates(candidates), nil
}

func (s *Service) fetch(ctx context.Context, origin geo.Coordinate, lengthMeters float64, seed int) ([]geo.Coordinate, error) {
	if path, ok := s.cache.Get(ctx, origin, lengthMeters, seed); ok {
		return path, nil
	}
	path, err := s.provider.RoundTrip(ctx, origin, lengthMeters, seed)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, origin, lengthMeters, seed, path)
	return path, nil
}

// Select marks one candidate as chosen. Pure state change: geometries are
// untouched.
func (s *Service) Select(id int) ([]Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if id < 0 || id >= len(s.candidates) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCandidate, id)
	}
	for i := range s.candidates {
		s.candidates[i].Selected = i == id
	}
	return copyCandidates(s.candidates), nil
}

// Candidates returns the current candidate set.
func (s *Service) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCandidates(s.candidates)
}

func copyCandidates(in []Candidate) []Candidate {
	out := make([]Candidate, len(in))
	copy(out, in)
	return out
}
