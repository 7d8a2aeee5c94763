//go:build !windows

package cncport

// The device tree, registry, and COM device paths only exist on Windows.
// Off-Windows the defaults fail cleanly; inject fakes via options instead.

func defaultDeviceQuery() DeviceQuery { return unsupportedPlatform{} }

func defaultNameResolver() NameResolver { return unsupportedPlatform{} }

func defaultProber() Prober { return unsupportedPlatform{} }

type unsupportedPlatform struct{}

func (unsupportedPlatform) Devices() ([]RawDevice, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedPlatform) PortName(id string) (string, error) {
	return "", ErrUnsupportedPlatform
}

func (unsupportedPlatform) InUse(path string) (bool, error) {
	return false, ErrUnsupportedPlatform
}
