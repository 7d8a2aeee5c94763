package cncport

// DeviceQuery enumerates the OS device tree. Implementations return only
// devices reporting a healthy status; records are valid for the duration of
// one enumeration pass.
type DeviceQuery interface {
	Devices() ([]RawDevice, error)
}
