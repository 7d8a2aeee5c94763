package cncport

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	ErrEnumerationFailed   = errors.New("device enumeration failed")
	ErrNameNotFound        = errors.New("port name not found in registry")
	ErrPortProbeFailed     = errors.New("port probe failed")
	ErrUnsupportedPlatform = errors.New("operation not supported on this platform")
)

// MissingPropertyError reports a device that classified into a variant but
// lacks a property that variant requires. Such a device is malformed or
// unsupported and is dropped during enumeration.
type MissingPropertyError struct {
	InstanceID string // empty if the instance id itself is missing
	Property   string
}

func (e *MissingPropertyError) Error() string {
	if e.InstanceID == "" {
		return fmt.Sprintf("device is missing required property %q", e.Property)
	}
	return fmt.Sprintf("device %s is missing required property %q", e.InstanceID, e.Property)
}
