package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/office-picker/internal/adapter/api"
	"github.com/couchcryptid/office-picker/internal/adapter/content"
	"github.com/couchcryptid/office-picker/internal/adapter/file"
	"github.com/couchcryptid/office-picker/internal/adapter/kafka"
	"github.com/couchcryptid/office-picker/internal/adapter/sqlite"
	"github.com/couchcryptid/office-picker/internal/config"
	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/hierarchy"
	"github.com/couchcryptid/office-picker/internal/observability"
	"github.com/couchcryptid/office-picker/internal/selection"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	db      *sqlite.Store
	api     *api.Client
}

// bootstrap loads configuration and opens the local state database. Logs go
// to stderr so stdout carries only prompts and handoff URLs.
func bootstrap(cli *CLI, logOut io.Writer) (*app, error) {
	if err := config.LoadDotEnv(cli.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg, logOut)
	metrics := observability.NewMetrics()

	db, err := sqlite.Open(cfg.StateDBPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		db:      db,
		api:     api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, metrics, logger),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("state db close error", "error", err)
	}
}

func (a *app) fastPath() *selection.FastPath {
	return selection.NewFastPath(a.db, a.logger, a.metrics)
}

func (a *app) handoff(out io.Writer) *content.Handoff {
	return content.NewHandoff(a.cfg.ContentBaseURL, out, a.logger)
}

// hierarchyStore reads from fixture files when configured, otherwise from the API.
func (a *app) hierarchyStore() *hierarchy.Store {
	var locations, facilities hierarchy.Source = a.api.Source(a.cfg.LocationsPath), a.api.Source(a.cfg.OfficesPath)
	if a.cfg.LocationsFile != "" {
		locations = file.NewSource(a.cfg.LocationsFile, domain.SourceHierarchy)
	}
	if a.cfg.OfficesFile != "" {
		facilities = file.NewSource(a.cfg.OfficesFile, domain.SourceFacilities)
	}
	return hierarchy.NewStore(locations, facilities, a.logger, a.metrics)
}

// binder returns the configured notification transport and a function that
// releases it.
func (a *app) binder() (domain.Binder, func()) {
	if a.cfg.NotifyTransport == config.TransportKafka {
		b := kafka.NewBinder(a.cfg, a.logger)
		return b, func() {
			if err := b.Close(); err != nil {
				a.logger.Error("kafka binder close error", "error", err)
			}
		}
	}
	return a.api.Binder(a.cfg.NotifyRegisterPath), func() {}
}

// ShowCmd prints the remembered office and its content URL.
type ShowCmd struct {
	Resolve bool `help:"Look the office up in the current location data"`
}

func (c *ShowCmd) Run(cli *CLI) error {
	a, err := bootstrap(cli, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	id, ok, err := a.fastPath().Remembered(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No office selected.")
		return nil
	}

	fmt.Printf("Office:  %s\n", id)
	fmt.Printf("Content: %s\n", a.handoff(os.Stdout).URL(id))
	if ts, ok, err := a.db.UpdatedAt(ctx, selection.RememberedFacilityKey); err == nil && ok {
		fmt.Printf("Chosen:  %s\n", formatUnix(ts))
	}
	if c.Resolve {
		return c.resolve(ctx, a, id)
	}
	return nil
}

func (c *ShowCmd) resolve(ctx context.Context, a *app, id string) error {
	ctx, cancel := loadContext(ctx, a.cfg.LoadTimeout)
	defer cancel()

	h, err := a.hierarchyStore().Load(ctx)
	if err != nil {
		return err
	}
	f, ok := h.Facility(id)
	if !ok {
		fmt.Println("Name:    (not in current data)")
		return nil
	}
	fmt.Printf("Name:    %s\n", f.Name)
	if f.Type.Name != "" {
		fmt.Printf("Type:    %s\n", f.Type.Name)
	}
	status := f.Status
	if !f.IsActive {
		status = strings.TrimSpace(status + " (inactive)")
	}
	if status != "" {
		fmt.Printf("Status:  %s\n", status)
	}
	return nil
}

// ResetCmd forgets the remembered office.
type ResetCmd struct{}

func (c *ResetCmd) Run(cli *CLI) error {
	a, err := bootstrap(cli, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.fastPath().Forget(context.Background()); err != nil {
		return err
	}
	a.logger.Info("remembered office cleared")
	fmt.Println("Remembered office cleared.")
	return nil
}

// ValidateCmd loads both sources and reports integrity problems.
type ValidateCmd struct {
	Strict bool `help:"Exit non-zero when issues are found"`
}

func (c *ValidateCmd) Run(cli *CLI) error {
	a, err := bootstrap(cli, os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := loadContext(context.Background(), a.cfg.LoadTimeout)
	defer cancel()

	h, err := a.hierarchyStore().Load(ctx)
	if err != nil {
		return err
	}
	if h.FacilityErr != nil {
		fmt.Printf("offices unavailable: %v\n", h.FacilityErr)
	}

	issues := hierarchy.Validate(h)
	fmt.Printf("%d countries, %d offices, %d issues\n", len(h.Countries), len(h.Facilities), len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s\n", issue)
	}
	if c.Strict && (len(issues) > 0 || h.FacilityErr != nil) {
		return fmt.Errorf("validation found %d issues", len(issues))
	}
	return nil
}
