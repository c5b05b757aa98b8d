package notify

import "context"

// PermissionStatus is the user's answer to the notification permission prompt.
type PermissionStatus string

const (
	PermissionUndetermined PermissionStatus = "undetermined"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
)

// Importance mirrors the Android channel importance levels.
type Importance int

// ImportanceMax is the Android IMPORTANCE_MAX level.
const ImportanceMax Importance = 5

// Channel is an Android notification channel.
type Channel struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Importance       Importance `json:"importance"`
	VibrationPattern []int      `json:"vibrationPattern"` // milliseconds, alternating wait/vibrate
	LightColor       string     `json:"lightColor"`
}

// DefaultChannel is registered on Android before a token is requested.
var DefaultChannel = Channel{
	ID:               "default",
	Name:             "default",
	Importance:       ImportanceMax,
	VibrationPattern: []int{0, 250, 250, 250},
	LightColor:       "#FF231F7C",
}

// Platform is the device notification subsystem.
type Platform interface {
	// OS returns the operating system name, e.g. "android" or "ios".
	OS() string
	// IsPhysicalDevice reports whether the platform can be issued a token.
	IsPhysicalDevice() bool
	SetChannel(ctx context.Context, ch Channel) error
	PermissionStatus(ctx context.Context) (PermissionStatus, error)
	// RequestPermission prompts the user and returns the resulting status.
	RequestPermission(ctx context.Context) (PermissionStatus, error)
	MintToken(ctx context.Context, projectID string) (string, error)
}
