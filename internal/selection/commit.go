package selection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/notify"
	"github.com/couchcryptid/office-picker/internal/observability"
)

// Confirmer asks the user to confirm a facility choice.
type Confirmer interface {
	Confirm(ctx context.Context, facility domain.Facility) (bool, error)
}

// Outcome is the result of a commit attempt.
type Outcome string

const (
	// OutcomeIgnored means the facility was inactive and nothing happened.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeCancelled means the user declined the confirmation.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeHandedOff means the choice was persisted and the content view opened.
	OutcomeHandedOff Outcome = "handed_off"
)

const defaultBindTimeout = 10 * time.Second

// Committer turns a tapped facility into a remembered choice and a handoff.
type Committer struct {
	confirmer   Confirmer
	fastPath    *FastPath
	binder      domain.Binder
	tokens      *notify.TokenHolder
	handoff     domain.Handoff
	bindTimeout time.Duration
	logger      *slog.Logger
	metrics     *observability.Metrics

	bindings sync.WaitGroup
}

// CommitterOption configures a Committer.
type CommitterOption func(*Committer)

// WithBindTimeout bounds each background binding request.
func WithBindTimeout(d time.Duration) CommitterOption {
	return func(c *Committer) {
		if d > 0 {
			c.bindTimeout = d
		}
	}
}

// NewCommitter wires the commit sequence. binder may be nil, in which case
// bindings are always skipped.
func NewCommitter(
	confirmer Confirmer,
	fastPath *FastPath,
	binder domain.Binder,
	tokens *notify.TokenHolder,
	handoff domain.Handoff,
	logger *slog.Logger,
	metrics *observability.Metrics,
	opts ...CommitterOption,
) *Committer {
	c := &Committer{
		confirmer:   confirmer,
		fastPath:    fastPath,
		binder:      binder,
		tokens:      tokens,
		handoff:     handoff,
		bindTimeout: defaultBindTimeout,
		logger:      logger,
		metrics:     metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit runs confirmation, persistence, token binding and handoff for an
// active facility. The choice is persisted before handoff; binding runs in the
// background and its result never affects the outcome.
func (c *Committer) Commit(ctx context.Context, facility domain.Facility) (Outcome, error) {
	if !facility.IsActive {
		c.metrics.Commits.WithLabelValues(string(OutcomeIgnored)).Inc()
		return OutcomeIgnored, nil
	}

	ok, err := c.confirmer.Confirm(ctx, facility)
	if err != nil {
		c.metrics.Commits.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("confirm facility %s: %w", facility.ID, err)
	}
	if !ok {
		c.metrics.Commits.WithLabelValues(string(OutcomeCancelled)).Inc()
		return OutcomeCancelled, nil
	}

	if err := c.fastPath.Remember(ctx, facility.ID); err != nil {
		c.logger.Error("persist selection failed", "facility_id", facility.ID, "error", err)
	}

	c.bind(ctx, facility.ID)

	if err := c.handoff.Open(ctx, facility.ID); err != nil {
		c.metrics.Commits.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("hand off facility %s: %w", facility.ID, err)
	}

	c.metrics.Commits.WithLabelValues(string(OutcomeHandedOff)).Inc()
	c.logger.Info("facility selected", "facility_id", facility.ID, "facility", facility.Name)
	return OutcomeHandedOff, nil
}

// bind sends the held token to the notification backend without waiting for
// the result. Failures are logged and counted, never retried.
func (c *Committer) bind(ctx context.Context, facilityID string) {
	token, ok := c.tokens.Token()
	if !ok || c.binder == nil {
		c.metrics.Bindings.WithLabelValues("skipped").Inc()
		return
	}

	bindCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.bindTimeout)
	c.bindings.Add(1)
	go func() {
		defer c.bindings.Done()
		defer cancel()
		if err := c.binder.BindToken(bindCtx, facilityID, token); err != nil {
			c.metrics.Bindings.WithLabelValues("error").Inc()
			c.logger.Warn("notification binding failed", "facility_id", facilityID, "error", err)
			return
		}
		c.metrics.Bindings.WithLabelValues("success").Inc()
		c.logger.Debug("notification binding sent", "facility_id", facilityID)
	}()
}

// Wait blocks until in-flight bindings finish.
func (c *Committer) Wait() {
	c.bindings.Wait()
}
