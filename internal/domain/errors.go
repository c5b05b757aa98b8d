package domain

import (
	"errors"
	"fmt"
)

// LoadSource names which collaborator a LoadError came from.
type LoadSource string

const (
	SourceHierarchy  LoadSource = "hierarchy"
	SourceFacilities LoadSource = "facilities"
)

// LoadError reports that a location or facility source was unreachable or
// returned data in an unrecognized shape.
type LoadError struct {
	Source LoadSource
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ErrUnrecognizedShape is returned when a response body parses but matches
// none of the accepted layouts.
var ErrUnrecognizedShape = errors.New("unrecognized response shape")

// Notification registration failures. Callers treat all of them as "no token".
var (
	ErrNotSupportedDevice   = errors.New("push notifications require a physical device")
	ErrPermissionDenied     = errors.New("notification permission not granted")
	ErrConfigurationMissing = errors.New("push notification configuration missing")
)
