package hierarchy

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/observability"
)

// Source fetches a raw response body from a location or facility collaborator.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Store loads the location tree and the facility list and keeps the most
// recent successful result.
type Store struct {
	locations  Source
	facilities Source
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu      sync.RWMutex
	current *domain.Hierarchy
}

// NewStore creates a Store reading from the two independent sources.
func NewStore(locations, facilities Source, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		locations:  locations,
		facilities: facilities,
		logger:     logger,
		metrics:    metrics,
	}
}

// Load fetches both sources concurrently. A location failure is returned as a
// *domain.LoadError. A facility failure is not fatal: the hierarchy comes back
// with no facilities and FacilityErr set. Nothing is retried.
func (s *Store) Load(ctx context.Context) (domain.Hierarchy, error) {
	var (
		wg         sync.WaitGroup
		countries  []domain.Country
		locErr     error
		facilities []domain.Facility
		facErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		countries, locErr = s.loadCountries(ctx)
	}()
	go func() {
		defer wg.Done()
		facilities, facErr = s.loadFacilities(ctx)
	}()
	wg.Wait()

	if locErr != nil {
		s.logger.Error("hierarchy load failed", "error", locErr)
		return domain.Hierarchy{}, &domain.LoadError{Source: domain.SourceHierarchy, Err: locErr}
	}

	h := domain.Hierarchy{Countries: countries, Facilities: facilities}
	if facErr != nil {
		s.logger.Warn("facility load failed, continuing without facilities", "error", facErr)
		h.Facilities = []domain.Facility{}
		h.FacilityErr = &domain.LoadError{Source: domain.SourceFacilities, Err: facErr}
	}

	s.mu.Lock()
	s.current = &h
	s.mu.Unlock()

	s.logger.Info("hierarchy loaded", "countries", len(h.Countries), "facilities", len(h.Facilities))
	return h, nil
}

// Current returns the last successfully loaded hierarchy.
func (s *Store) Current() (domain.Hierarchy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Hierarchy{}, false
	}
	return *s.current, true
}

// CheckReadiness returns nil once a hierarchy has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	if _, ok := s.Current(); !ok {
		return errors.New("location hierarchy not loaded")
	}
	return nil
}

func (s *Store) loadCountries(ctx context.Context) ([]domain.Country, error) {
	start := time.Now()
	body, err := s.locations.Fetch(ctx)
	if err == nil {
		var countries []domain.Country
		countries, err = DecodeCountries(body)
		if err == nil {
			s.observe(domain.SourceHierarchy, "success", start)
			return countries, nil
		}
	}
	s.observe(domain.SourceHierarchy, "error", start)
	return nil, err
}

func (s *Store) loadFacilities(ctx context.Context) ([]domain.Facility, error) {
	start := time.Now()
	body, err := s.facilities.Fetch(ctx)
	if err == nil {
		var facilities []domain.Facility
		facilities, err = DecodeFacilities(body)
		if err == nil {
			s.observe(domain.SourceFacilities, "success", start)
			return facilities, nil
		}
	}
	s.observe(domain.SourceFacilities, "error", start)
	return nil, err
}

func (s *Store) observe(source domain.LoadSource, outcome string, start time.Time) {
	s.metrics.Loads.WithLabelValues(string(source), outcome).Inc()
	s.metrics.LoadDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())
}
