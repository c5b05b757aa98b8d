package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/office-picker/internal/adapter/device"
	"github.com/couchcryptid/office-picker/internal/adapter/httpadapter"
	"github.com/couchcryptid/office-picker/internal/config"
	"github.com/couchcryptid/office-picker/internal/funnel"
	"github.com/couchcryptid/office-picker/internal/notify"
	"github.com/couchcryptid/office-picker/internal/selection"
)

// RunCmd opens the remembered office or runs the chooser.
type RunCmd struct{}

func (c *RunCmd) Run(cli *CLI) error {
	a, err := bootstrap(cli, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	notify.Init(notify.DefaultPresentation())
	p := notify.CurrentPresentation()
	a.logger.Debug("notification presentation",
		"alert", p.ShowAlert, "banner", p.ShowBanner, "list", p.ShowList, "sound", p.PlaySound, "badge", p.SetBadge)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	term := newTerminal(os.Stdin, os.Stdout)
	store := a.hierarchyStore()
	fastPath := a.fastPath()
	handoff := a.handoff(os.Stdout)
	tokens := notify.NewTokenHolder()

	platform := device.NewPlatform(device.Options{
		OS:       a.cfg.DeviceOS,
		Physical: a.cfg.DeviceKind == config.DevicePhysical,
		TokenURL: a.cfg.PushTokenURL,
		Timeout:  a.cfg.HTTPTimeout,
	}, a.db, term, a.logger)
	registrar := notify.NewRegistrar(platform, a.cfg.PushProjectID, a.logger, a.metrics)

	binder, closeBinder := a.binder()
	defer closeBinder()

	committer := selection.NewCommitter(term, fastPath, binder, tokens, handoff, a.logger, a.metrics,
		selection.WithBindTimeout(a.cfg.HTTPTimeout))

	var srv *httpadapter.Server
	if a.cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(a.cfg.HTTPAddr, store, fastPath, a.logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http server error", "error", err)
			}
		}()
	}

	startup := selection.NewStartup(fastPath, store, registrar, tokens, a.cfg.LoadTimeout, a.logger)
	runErr := c.navigate(ctx, startup, term, handoff, committer.Commit)

	a.logger.Info("shutting down")
	if !waitTimeout(committer.Wait, a.cfg.ShutdownTimeout) {
		a.logger.Warn("notification binding still in flight at exit")
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", "error", err)
		}
	}

	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, errInputClosed) {
		return nil
	}
	return runErr
}

type opener interface {
	Open(ctx context.Context, facilityID string) error
}

// navigate applies the startup decision: a remembered office is opened
// directly, otherwise the chooser runs on the loaded hierarchy.
func (c *RunCmd) navigate(ctx context.Context, startup *selection.Startup, term *terminal, handoff opener, commit commitFunc) error {
	term.printf("Loading offices...\n")
	launch, err := startup.Run(ctx)
	if err != nil {
		return err
	}

	if launch.FastPath() {
		return handoff.Open(ctx, launch.FastPathID)
	}
	if launch.LoadErr != nil {
		term.printf("Could not load locations: %v\n", launch.LoadErr)
		return launch.LoadErr
	}
	if launch.Hierarchy.FacilityErr != nil {
		term.printf("Offices are unavailable right now; locations can still be browsed.\n")
	}

	_, err = runFunnel(ctx, term, funnel.NewEngine(launch.Hierarchy), commit)
	return err
}

func loadContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// waitTimeout runs wait and reports whether it returned within d.
func waitTimeout(wait func(), d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).Format(time.RFC3339)
}
