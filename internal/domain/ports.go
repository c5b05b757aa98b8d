package domain

import "context"

// KeyValueStore is durable local storage for small string values.
type KeyValueStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Binder associates a notification token with a facility on the notification backend.
type Binder interface {
	BindToken(ctx context.Context, facilityID, token string) error
}

// Handoff transfers control to the facility content view.
type Handoff interface {
	Open(ctx context.Context, facilityID string) error
}
