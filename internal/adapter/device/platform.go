package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/couchcryptid/office-picker/internal/notify"
	"github.com/google/uuid"
)

// Keys under which device state lives in the key-value store.
const (
	keyPermission    = "notifications.permission"
	keyDeviceID      = "notifications.device_id"
	keyChannelPrefix = "notifications.channel."
)

// Prompter asks the user whether notifications may be sent.
type Prompter interface {
	AskNotificationPermission(ctx context.Context) (bool, error)
}

// Options configures a Platform.
type Options struct {
	OS       string
	Physical bool
	TokenURL string
	Timeout  time.Duration
}

// Platform implements notify.Platform for a host process. Permission answers
// and the device ID are persisted so the user is asked once, and tokens are
// minted by an Expo-compatible push token service.
type Platform struct {
	opts       Options
	store      domain.KeyValueStore
	prompter   Prompter
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPlatform creates a Platform backed by store.
func NewPlatform(opts Options, store domain.KeyValueStore, prompter Prompter, logger *slog.Logger) *Platform {
	return &Platform{
		opts:       opts,
		store:      store,
		prompter:   prompter,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
	}
}

func (p *Platform) OS() string             { return p.opts.OS }
func (p *Platform) IsPhysicalDevice() bool { return p.opts.Physical }

// SetChannel records the channel definition so later deliveries can use it.
// An identical stored definition is left untouched.
func (p *Platform) SetChannel(ctx context.Context, ch notify.Channel) error {
	existing, ok, err := p.Channel(ctx, ch.ID)
	if err != nil {
		p.logger.Warn("stored channel unreadable, overwriting", "channel", ch.ID, "error", err)
	}
	if ok && reflect.DeepEqual(existing, ch) {
		return nil
	}

	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode channel: %w", err)
	}
	return p.store.Set(ctx, keyChannelPrefix+ch.ID, string(data))
}

// Channel returns a previously stored channel.
func (p *Platform) Channel(ctx context.Context, id string) (notify.Channel, bool, error) {
	raw, ok, err := p.store.Get(ctx, keyChannelPrefix+id)
	if err != nil || !ok {
		return notify.Channel{}, false, err
	}
	var ch notify.Channel
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		return notify.Channel{}, false, fmt.Errorf("decode channel %q: %w", id, err)
	}
	return ch, true, nil
}

func (p *Platform) PermissionStatus(ctx context.Context) (notify.PermissionStatus, error) {
	raw, ok, err := p.store.Get(ctx, keyPermission)
	if err != nil {
		return "", err
	}
	if !ok {
		return notify.PermissionUndetermined, nil
	}
	return notify.PermissionStatus(raw), nil
}

func (p *Platform) RequestPermission(ctx context.Context) (notify.PermissionStatus, error) {
	granted, err := p.prompter.AskNotificationPermission(ctx)
	if err != nil {
		return "", fmt.Errorf("ask permission: %w", err)
	}
	status := notify.PermissionDenied
	if granted {
		status = notify.PermissionGranted
	}
	if err := p.store.Set(ctx, keyPermission, string(status)); err != nil {
		p.logger.Warn("persist notification permission failed", "status", status, "error", err)
	}
	return status, nil
}

type tokenRequest struct {
	Type      string `json:"type"`
	ProjectID string `json:"projectId"`
	DeviceID  string `json:"deviceId"`
}

type tokenResponse struct {
	Data struct {
		ExpoPushToken string `json:"expoPushToken"`
	} `json:"data"`
}

// MintToken requests a push token for this device from the token service.
func (p *Platform) MintToken(ctx context.Context, projectID string) (string, error) {
	if p.opts.TokenURL == "" {
		return "", fmt.Errorf("push token url: %w", domain.ErrConfigurationMissing)
	}

	deviceID, err := p.deviceID(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(tokenRequest{Type: "expo", ProjectID: projectID, DeviceID: deviceID})
	if err != nil {
		return "", fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.opts.TokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token service error: status %d: %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if tr.Data.ExpoPushToken == "" {
		return "", fmt.Errorf("token service returned no token")
	}
	return tr.Data.ExpoPushToken, nil
}

// deviceID returns the persisted installation ID, generating one on first use.
func (p *Platform) deviceID(ctx context.Context) (string, error) {
	id, ok, err := p.store.Get(ctx, keyDeviceID)
	if err != nil {
		return "", fmt.Errorf("load device id: %w", err)
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := p.store.Set(ctx, keyDeviceID, id); err != nil {
		return "", fmt.Errorf("save device id: %w", err)
	}
	p.logger.Info("generated device id", "device_id", id)
	return id, nil
}
