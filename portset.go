package cncport

import (
	"fmt"
	"strings"
)

// PortPair is a primary CNC port together with the secondary endpoint it
// replicates to.
type PortPair struct {
	Primary   *CNCPort
	Secondary *CNCPort
}

// PortSet is an immutable snapshot of one device enumeration pass, bucketed
// into the three device classes. Create a new set with Enumerate to observe
// a changed topology; sets are never updated in place.
type PortSet struct {
	physical []*PhysicalPort
	buses    []*CNCBus
	cnc      []*CNCPort
}

// Enumerate queries the OS device tree and classifies every healthy device
// into physical ports, CNC buses, and CNC ports. A failure of the device
// query itself wraps ErrEnumerationFailed; failures local to a single
// device (unreadable properties, missing required fields) drop that device
// with a warning and never abort the pass.
func Enumerate(opts ...Option) (*PortSet, error) {
	cfg := defaultEnumerateConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	devices, err := cfg.query.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumerationFailed, err)
	}

	set := &PortSet{}
	for _, dev := range devices {
		props := resolveProperties(dev, cfg.logger)

		// Devices outside the two port classes are irrelevant here;
		// so is a degraded device with no class at all
		class, _ := props.Value(PropClass)
		switch class {
		case classPorts:
			port, err := NewPhysicalPort(props, cfg.probe)
			if err != nil {
				cfg.logger.Warn("skipping malformed physical port", "error", err)
				continue
			}
			set.physical = append(set.physical, port)

		case classCNCPorts:
			id, _ := props.Value(PropInstanceID)
			if strings.HasPrefix(id, rootInstancePrefix) {
				bus, err := NewCNCBus(props)
				if err != nil {
					cfg.logger.Warn("skipping malformed CNC bus", "error", err)
					continue
				}
				set.buses = append(set.buses, bus)
			} else {
				port, err := NewCNCPort(props, cfg.names, cfg.probe)
				if err != nil {
					cfg.logger.Warn("skipping malformed CNC port", "error", err)
					continue
				}
				set.cnc = append(set.cnc, port)
			}
		}
	}
	return set, nil
}

// PhysicalPorts returns all physical serial ports.
func (s *PortSet) PhysicalPorts() []*PhysicalPort { return s.physical }

// Buses returns all CNC bus controllers.
func (s *PortSet) Buses() []*CNCBus { return s.buses }

// CNCPorts returns all virtual port endpoints, primary and secondary.
func (s *PortSet) CNCPorts() []*CNCPort { return s.cnc }

// PrimaryPorts returns the CNC ports with the primary role.
func (s *PortSet) PrimaryPorts() []*CNCPort {
	var primary []*CNCPort
	for _, port := range s.cnc {
		if port.IsPrimary() {
			primary = append(primary, port)
		}
	}
	return primary
}

// SecondaryPorts returns the CNC ports with the secondary role.
func (s *PortSet) SecondaryPorts() []*CNCPort {
	var secondary []*CNCPort
	for _, port := range s.cnc {
		if !port.IsPrimary() {
			secondary = append(secondary, port)
		}
	}
	return secondary
}

// Pairs reconstructs the primary/secondary pairs. A primary whose declared
// sibling has no matching secondary in this snapshot is dropped silently;
// an unpaired primary is not actionable. No ordering is guaranteed;
// consumers needing a stable order must sort themselves.
func (s *PortSet) Pairs() []PortPair {
	secondaries := make(map[string]*CNCPort)
	for _, port := range s.SecondaryPorts() {
		secondaries[strings.ToUpper(port.InstanceID())] = port
	}

	var pairs []PortPair
	for _, port := range s.PrimaryPorts() {
		if sibling, ok := secondaries[port.SiblingInstanceID()]; ok {
			pairs = append(pairs, PortPair{Primary: port, Secondary: sibling})
		}
	}
	return pairs
}
