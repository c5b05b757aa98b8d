package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/observability"
)

// Registrar obtains a push token for this device.
type Registrar struct {
	platform  Platform
	projectID string
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewRegistrar creates a Registrar minting tokens for projectID.
func NewRegistrar(platform Platform, projectID string, logger *slog.Logger, metrics *observability.Metrics) *Registrar {
	return &Registrar{
		platform:  platform,
		projectID: projectID,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register returns a delivery token. It fails with domain.ErrNotSupportedDevice,
// domain.ErrPermissionDenied or domain.ErrConfigurationMissing; callers treat
// any failure as "no token". The user is prompted only while permission has
// not been granted.
func (r *Registrar) Register(ctx context.Context) (string, error) {
	token, err := r.register(ctx)
	r.metrics.Registrations.WithLabelValues(outcome(err)).Inc()
	return token, err
}

func (r *Registrar) register(ctx context.Context) (string, error) {
	if strings.EqualFold(r.platform.OS(), "android") {
		if err := r.platform.SetChannel(ctx, DefaultChannel); err != nil {
			r.logger.Warn("notification channel setup failed", "channel", DefaultChannel.ID, "error", err)
		}
	}

	if !r.platform.IsPhysicalDevice() {
		return "", domain.ErrNotSupportedDevice
	}

	status, err := r.platform.PermissionStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("query notification permission: %w", err)
	}
	if status != PermissionGranted {
		status, err = r.platform.RequestPermission(ctx)
		if err != nil {
			return "", fmt.Errorf("request notification permission: %w", err)
		}
	}
	if status != PermissionGranted {
		return "", domain.ErrPermissionDenied
	}

	if r.projectID == "" {
		return "", domain.ErrConfigurationMissing
	}

	token, err := r.platform.MintToken(ctx, r.projectID)
	if err != nil {
		return "", fmt.Errorf("mint push token: %w", err)
	}
	return token, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotSupportedDevice):
		return "not_supported"
	case errors.Is(err, domain.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, domain.ErrConfigurationMissing):
		return "config_missing"
	default:
		return "error"
	}
}
