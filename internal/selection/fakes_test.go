package selection

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/office-picker/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memStore struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

type scriptedConfirmer struct {
	answer bool
	err    error
	asked  []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, f domain.Facility) (bool, error) {
	c.asked = append(c.asked, f.ID)
	return c.answer, c.err
}

type binding struct {
	facilityID string
	token      string
}

type recordingBinder struct {
	mu    sync.Mutex
	calls []binding
	err   error
	block chan struct{}
}

func (b *recordingBinder) BindToken(ctx context.Context, facilityID, token string) error {
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, binding{facilityID, token})
	return b.err
}

func (b *recordingBinder) bindings() []binding {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]binding(nil), b.calls...)
}

// recordingHandoff captures the remembered facility at the moment of handoff.
type recordingHandoff struct {
	store      *memStore
	opened     []string
	rememberAt []string
	err        error
}

func (h *recordingHandoff) Open(_ context.Context, facilityID string) error {
	h.opened = append(h.opened, facilityID)
	if h.store != nil {
		v, _ := h.store.value(RememberedFacilityKey)
		h.rememberAt = append(h.rememberAt, v)
	}
	return h.err
}

type stubLoader struct {
	hierarchy domain.Hierarchy
	err       error
	wait      chan struct{}
	calls     int
	mu        sync.Mutex
}

func (l *stubLoader) Load(ctx context.Context) (domain.Hierarchy, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	if l.wait != nil {
		select {
		case <-l.wait:
		case <-ctx.Done():
			return domain.Hierarchy{}, &domain.LoadError{Source: domain.SourceHierarchy, Err: ctx.Err()}
		}
	}
	return l.hierarchy, l.err
}

type stubRegistrar struct {
	token string
	err   error
}

func (r *stubRegistrar) Register(_ context.Context) (string, error) {
	return r.token, r.err
}

func narnia(active bool) domain.Hierarchy {
	castle := domain.City{ID: "castle", Name: "Castle"}
	return domain.Hierarchy{
		Countries: []domain.Country{
			{ID: "narnia", Name: "Narnia", States: []domain.State{
				{ID: "cair", Name: "Cair Paravel", Cities: []domain.City{castle}},
			}},
		},
		Facilities: []domain.Facility{
			{ID: "f1", Name: "Throne Room", CityID: castle.ID, IsActive: active},
		},
	}
}
