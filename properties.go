package cncport

import "log/slog"

// Property keys exposed by the device query. The names mirror the PnP
// device property keys they are read from.
const (
	PropClass        = "Class"
	PropInstanceID   = "InstanceID"
	PropLocationInfo = "LocationInfo"
	PropName         = "Name"
	PropParent       = "Parent"
	PropSiblings     = "Siblings"
	PropDeviceDesc   = "DeviceDesc"
	PropDriverDesc   = "DriverDesc"
)

// RawProperty is a single property entry as reported by the OS. Scalar
// values carry one element in Data; list values carry all elements.
type RawProperty struct {
	Key  string
	Data []string
}

// RawDevice is one OS-reported device record. It is valid only for the
// duration of the enumeration pass that produced it.
type RawDevice interface {
	// ReadProperties returns the device's property entries. It may fail
	// as a whole (driver error, permissions); callers degrade the device
	// rather than propagate.
	ReadProperties() ([]RawProperty, error)
}

// Properties is the normalized key/value record derived from a RawDevice.
type Properties map[string][]string

// Value returns the first value stored under key.
func (p Properties) Value(key string) (string, bool) {
	v, ok := p[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Values returns all values stored under key.
func (p Properties) Values(key string) ([]string, bool) {
	v, ok := p[key]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

// resolveProperties flattens a raw device's property list into a Properties
// record. A failed read degrades the device to an empty record; it will
// simply fail later classification checks.
func resolveProperties(dev RawDevice, logger *slog.Logger) Properties {
	entries, err := dev.ReadProperties()
	if err != nil {
		logger.Warn("device property read failed", "error", err)
		return Properties{}
	}

	props := make(Properties, len(entries))
	for _, entry := range entries {
		props[entry.Key] = append(props[entry.Key], entry.Data...)
	}
	return props
}
