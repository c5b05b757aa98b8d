package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/observability"
)

// RememberedFacilityKey is the key-value store key holding the last confirmed facility.
const RememberedFacilityKey = "selectedOfficeId"

// FastPath reads and writes the remembered facility. A remembered ID is
// trusted as-is; whether the facility still exists is left to the content view.
type FastPath struct {
	store   domain.KeyValueStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFastPath creates a FastPath backed by store.
func NewFastPath(store domain.KeyValueStore, logger *slog.Logger, metrics *observability.Metrics) *FastPath {
	return &FastPath{store: store, logger: logger, metrics: metrics}
}

// Check returns the remembered facility ID. Read failures are logged and
// reported as no remembered facility.
func (f *FastPath) Check(ctx context.Context) (string, bool) {
	id, ok, err := f.store.Get(ctx, RememberedFacilityKey)
	if err != nil {
		f.logger.Warn("read remembered facility failed", "error", err)
		ok = false
	}
	if !ok || id == "" {
		f.metrics.FastPath.WithLabelValues("miss").Inc()
		return "", false
	}
	f.metrics.FastPath.WithLabelValues("hit").Inc()
	return id, true
}

// Remember stores facilityID as the remembered facility.
func (f *FastPath) Remember(ctx context.Context, facilityID string) error {
	if err := f.store.Set(ctx, RememberedFacilityKey, facilityID); err != nil {
		return fmt.Errorf("remember facility %s: %w", facilityID, err)
	}
	return nil
}

// Forget clears the remembered facility so the next launch shows the funnel.
func (f *FastPath) Forget(ctx context.Context) error {
	if err := f.store.Delete(ctx, RememberedFacilityKey); err != nil {
		return fmt.Errorf("forget remembered facility: %w", err)
	}
	return nil
}

// Remembered reads the remembered facility without counting it as a launch check.
func (f *FastPath) Remembered(ctx context.Context) (string, bool, error) {
	id, ok, err := f.store.Get(ctx, RememberedFacilityKey)
	if err != nil {
		return "", false, fmt.Errorf("read remembered facility: %w", err)
	}
	return id, ok && id != "", nil
}
