package hierarchy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	body  string
	err   error
	calls atomic.Int32
}

func (s *stubSource) Fetch(ctx context.Context) ([]byte, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

const (
	testCountries  = `[{"id":"us","name":"United States","states":[{"id":"tx","name":"Texas","cities":[{"id":"aus","name":"Austin"}]}]}]`
	testFacilities = `{"data":[{"id":"o-1","name":"HQ","isActive":true,"cityId":"aus"}]}`
)

func newTestStore(locations, facilities Source) (*Store, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return NewStore(locations, facilities, slog.New(slog.NewTextHandler(io.Discard, nil)), m), m
}

func TestStore_Load(t *testing.T) {
	s, m := newTestStore(&stubSource{body: testCountries}, &stubSource{body: testFacilities})

	h, err := s.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, h.Countries, 1)
	assert.Equal(t, "United States", h.Countries[0].Name)
	require.Len(t, h.Facilities, 1)
	assert.Equal(t, "o-1", h.Facilities[0].ID)
	assert.NoError(t, h.FacilityErr)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("hierarchy", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("facilities", "success")))
}

func TestStore_LoadHierarchyFailure(t *testing.T) {
	s, m := newTestStore(&stubSource{err: errors.New("connection refused")}, &stubSource{body: testFacilities})

	_, err := s.Load(context.Background())
	require.Error(t, err)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, domain.SourceHierarchy, loadErr.Source)
	assert.Contains(t, err.Error(), "connection refused")

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Error(t, s.CheckReadiness(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("hierarchy", "error")))
}

func TestStore_LoadUnrecognizedShape(t *testing.T) {
	s, _ := newTestStore(&stubSource{body: `{"result":[]}`}, &stubSource{body: testFacilities})

	_, err := s.Load(context.Background())

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedShape)
}

func TestStore_LoadFacilityFailureDegrades(t *testing.T) {
	s, m := newTestStore(&stubSource{body: testCountries}, &stubSource{err: errors.New("503")})

	h, err := s.Load(context.Background())
	require.NoError(t, err, "facility failure is not fatal")

	require.Len(t, h.Countries, 1)
	assert.NotNil(t, h.Facilities)
	assert.Empty(t, h.Facilities)

	var loadErr *domain.LoadError
	require.ErrorAs(t, h.FacilityErr, &loadErr)
	assert.Equal(t, domain.SourceFacilities, loadErr.Source)

	assert.NoError(t, s.CheckReadiness(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("facilities", "error")))
}

func TestStore_LoadCanBeRetried(t *testing.T) {
	locations := &stubSource{err: errors.New("timeout")}
	s, _ := newTestStore(locations, &stubSource{body: testFacilities})

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), locations.calls.Load(), "no automatic retry")

	locations.err = nil
	locations.body = testCountries
	h, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, h.Countries, 1)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, h.Countries, current.Countries)
}

func TestStore_LoadCancelled(t *testing.T) {
	s, _ := newTestStore(&stubSource{body: testCountries}, &stubSource{body: testFacilities})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
