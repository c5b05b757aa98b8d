package selection

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/notify"
)

// Loader produces the session hierarchy. *hierarchy.Store implements it.
type Loader interface {
	Load(ctx context.Context) (domain.Hierarchy, error)
}

// Registerer obtains a push token. *notify.Registrar implements it.
type Registerer interface {
	Register(ctx context.Context) (string, error)
}

// Launch is the navigation decision made at startup. When FastPathID is set
// the funnel is skipped and Hierarchy is not populated.
type Launch struct {
	FastPathID string
	Hierarchy  domain.Hierarchy
	LoadErr    error
}

// FastPath reports whether a remembered facility short-circuits the funnel.
func (l Launch) FastPath() bool { return l.FastPathID != "" }

// Startup issues the fast-path check, hierarchy load and notification
// registration concurrently.
type Startup struct {
	fastPath    *FastPath
	loader      Loader
	registrar   Registerer
	tokens      *notify.TokenHolder
	loadTimeout time.Duration
	logger      *slog.Logger
}

// NewStartup creates a Startup. A zero loadTimeout waits for the load indefinitely.
func NewStartup(fastPath *FastPath, loader Loader, registrar Registerer, tokens *notify.TokenHolder, loadTimeout time.Duration, logger *slog.Logger) *Startup {
	return &Startup{
		fastPath:    fastPath,
		loader:      loader,
		registrar:   registrar,
		tokens:      tokens,
		loadTimeout: loadTimeout,
		logger:      logger,
	}
}

type loadResult struct {
	hierarchy domain.Hierarchy
	err       error
}

// Run returns as soon as the fast-path finds a remembered facility, without
// waiting for the hierarchy. Otherwise it waits for the load and reports
// either the hierarchy or the load error. Registration keeps running in the
// background and resolves the token holder when it settles. The returned
// error is non-nil only when ctx ends first.
func (s *Startup) Run(ctx context.Context) (Launch, error) {
	go s.register(ctx)

	loaded := make(chan loadResult, 1)
	go func() {
		loadCtx, cancel := s.loadContext(ctx)
		defer cancel()
		h, err := s.loader.Load(loadCtx)
		loaded <- loadResult{hierarchy: h, err: err}
	}()

	remembered := make(chan string, 1)
	go func() {
		id, _ := s.fastPath.Check(ctx)
		remembered <- id
	}()

	select {
	case id := <-remembered:
		if id != "" {
			s.logger.Info("remembered facility found, skipping selection", "facility_id", id)
			return Launch{FastPathID: id}, nil
		}
	case <-ctx.Done():
		return Launch{}, ctx.Err()
	}

	select {
	case res := <-loaded:
		if err := ctx.Err(); err != nil {
			return Launch{}, err
		}
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				s.logger.Warn("hierarchy load timed out", "timeout", s.loadTimeout)
			}
			return Launch{LoadErr: res.err}, nil
		}
		return Launch{Hierarchy: res.hierarchy}, nil
	case <-ctx.Done():
		return Launch{}, ctx.Err()
	}
}

func (s *Startup) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.loadTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.loadTimeout)
}

func (s *Startup) register(ctx context.Context) {
	token, err := s.registrar.Register(ctx)
	if err != nil {
		s.logger.Info("notifications unavailable", "error", err)
	}
	s.tokens.Resolve(token, err)
}
