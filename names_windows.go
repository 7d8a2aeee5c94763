//go:build windows

package cncport

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

func defaultNameResolver() NameResolver { return registryNameResolver{} }

// com0com stores per-port parameters under a subkey named after the port's
// location id (CNCA0, CNCB0, ...)
const com0comParametersKey = `SYSTEM\CurrentControlSet\Services\com0com\Parameters`

// registryNameResolver reads the configured PortName value from the
// com0com driver parameters in the registry.
type registryNameResolver struct{}

func (registryNameResolver) PortName(id string) (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, com0comParametersKey+`\`+id, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("%w: opening parameters for %s: %v", ErrNameNotFound, id, err)
	}
	defer key.Close()

	name, _, err := key.GetStringValue("PortName")
	if err != nil {
		return "", fmt.Errorf("%w: reading PortName for %s: %v", ErrNameNotFound, id, err)
	}
	return name, nil
}
