//go:build windows

package cncport

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

func defaultProber() Prober { return systemProber{} }

// systemProber checks liveness by opening the port exclusively and closing
// it right away. Communication ports allow a single handle, so a busy-class
// failure means some other process holds the port.
type systemProber struct{}

func (systemProber) InUse(path string) (bool, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPortProbeFailed, err)
	}

	handle, err := windows.CreateFile(name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0, // no sharing
		nil,
		windows.OPEN_EXISTING,
		0, 0)
	if err == nil {
		windows.CloseHandle(handle)
		return false, nil
	}

	if errors.Is(err, windows.ERROR_ACCESS_DENIED) || errors.Is(err, windows.ERROR_SHARING_VIOLATION) {
		return true, nil
	}
	return false, fmt.Errorf("%w: opening %s: %v", ErrPortProbeFailed, path, err)
}
