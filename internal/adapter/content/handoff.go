package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
)

// Handoff opens the facility content view by printing its URL. The picker has
// no further interaction with the content once the URL is emitted.
type Handoff struct {
	baseURL string
	out     io.Writer
	logger  *slog.Logger
}

// NewHandoff creates a Handoff writing URLs under baseURL to out.
func NewHandoff(baseURL string, out io.Writer, logger *slog.Logger) *Handoff {
	return &Handoff{
		baseURL: strings.TrimRight(baseURL, "/"),
		out:     out,
		logger:  logger,
	}
}

// URL returns the mobile content URL for a facility.
func (h *Handoff) URL(facilityID string) string {
	return fmt.Sprintf("%s/%s?mobile=true", h.baseURL, url.PathEscape(facilityID))
}

func (h *Handoff) Open(_ context.Context, facilityID string) error {
	u := h.URL(facilityID)
	h.logger.Info("handing off to facility content", "facility_id", facilityID, "url", u)
	if _, err := fmt.Fprintln(h.out, u); err != nil {
		return fmt.Errorf("write handoff url: %w", err)
	}
	return nil
}
