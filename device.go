package cncport

import (
	"regexp"
	"strings"
)

// rePortName extracts the COM name from a display name like
// "Communications Port (COM3)"
var rePortName = regexp.MustCompile(`\((COM\d+)\)$`)

const (
	// Device class names reported by the PnP device tree
	classPorts    = "Ports"
	classCNCPorts = "CNCPorts"

	// Instance-id prefix of root-enumerated devices (the com0com bus)
	rootInstancePrefix = "ROOT"

	// Location-id prefix of the primary endpoint of a CNC pair
	primaryPortPrefix = "CNCA"
)

// DevicePath renders a port name in the extended-length device path form
// expected by CreateFile and by hub4com, e.g. "COM5" -> `\\.\COM5`.
func DevicePath(name string) string {
	return `\\.\` + name
}

// Device is the closed set of classified device variants: PhysicalPort,
// CNCBus, and CNCPort. Variants are selected exclusively by the
// classification step in Enumerate.
type Device interface {
	// InstanceID is the stable unique identifier of the device within
	// the current session.
	InstanceID() string

	// PortName is the human-facing port name. It may be empty when the
	// name cannot be determined; see the variant for details.
	PortName() string

	isDevice()
}

// Compile-time checks that all variants satisfy Device
var (
	_ Device = (*PhysicalPort)(nil)
	_ Device = (*CNCBus)(nil)
	_ Device = (*CNCPort)(nil)
)

// PhysicalPort is an OS-visible serial device backed by real hardware.
type PhysicalPort struct {
	instanceID        string
	portID            string
	portName          string
	description       string
	driverDescription string

	probe Prober
}

// NewPhysicalPort derives a PhysicalPort from a property record. It returns
// a *MissingPropertyError if a required property is absent.
func NewPhysicalPort(props Properties, probe Prober) (*PhysicalPort, error) {
	id, ok := props.Value(PropInstanceID)
	if !ok {
		return nil, &MissingPropertyError{Property: PropInstanceID}
	}
	portID, ok := props.Value(PropLocationInfo)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropLocationInfo}
	}
	desc, ok := props.Value(PropDeviceDesc)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropDeviceDesc}
	}
	driverDesc, ok := props.Value(PropDriverDesc)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropDriverDesc}
	}

	// The display name is optional; a non-matching or absent name yields
	// an empty port name
	name, _ := props.Value(PropName)
	portName := ""
	if m := rePortName.FindStringSubmatch(name); m != nil {
		portName = m[1]
	}

	return &PhysicalPort{
		instanceID:        id,
		portID:            portID,
		portName:          portName,
		description:       desc,
		driverDescription: driverDesc,
		probe:             probe,
	}, nil
}

func (p *PhysicalPort) isDevice() {}

// InstanceID returns the device's instance identifier.
func (p *PhysicalPort) InstanceID() string { return p.instanceID }

// PortID returns the OS location-info string.
func (p *PhysicalPort) PortID() string { return p.portID }

// PortName returns the COM name parsed from the display name, or the empty
// string if the display name did not carry one.
func (p *PhysicalPort) PortName() string { return p.portName }

// Description returns the device description.
func (p *PhysicalPort) Description() string { return p.description }

// DriverDescription returns the driver description.
func (p *PhysicalPort) DriverDescription() string { return p.driverDescription }

// DevicePath returns the extended-length device path of the port.
func (p *PhysicalPort) DevicePath() string { return DevicePath(p.portName) }

// InUse reports whether the port is currently held open by another process.
func (p *PhysicalPort) InUse() (bool, error) {
	return p.probe.InUse(p.DevicePath())
}

// CNCBus is the root controller device of a com0com driver instance, from
// which paired virtual ports descend. It carries no attributes beyond its
// instance id.
type CNCBus struct {
	instanceID string
}

// NewCNCBus derives a CNCBus from a property record.
func NewCNCBus(props Properties) (*CNCBus, error) {
	id, ok := props.Value(PropInstanceID)
	if !ok {
		return nil, &MissingPropertyError{Property: PropInstanceID}
	}
	return &CNCBus{instanceID: id}, nil
}

func (b *CNCBus) isDevice() {}

// InstanceID returns the bus's instance identifier.
func (b *CNCBus) InstanceID() string { return b.instanceID }

// PortName returns the instance id; a bus has no port name of its own.
func (b *CNCBus) PortName() string { return b.instanceID }

// CNCPort is one endpoint of a virtual null-modem pair.
type CNCPort struct {
	instanceID        string
	portID            string
	siblingInstanceID string
	busInstanceID     string

	names NameResolver
	probe Prober
}

// NewCNCPort derives a CNCPort from a property record. It returns a
// *MissingPropertyError if a required property is absent; the pairing logic
// depends on every one of these fields being present.
func NewCNCPort(props Properties, names NameResolver, probe Prober) (*CNCPort, error) {
	id, ok := props.Value(PropInstanceID)
	if !ok {
		return nil, &MissingPropertyError{Property: PropInstanceID}
	}
	portID, ok := props.Value(PropLocationInfo)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropLocationInfo}
	}
	siblings, ok := props.Values(PropSiblings)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropSiblings}
	}
	parent, ok := props.Value(PropParent)
	if !ok {
		return nil, &MissingPropertyError{InstanceID: id, Property: PropParent}
	}

	return &CNCPort{
		instanceID: id,
		portID:     portID,
		// Uppercased for case-insensitive sibling matching
		siblingInstanceID: strings.ToUpper(siblings[0]),
		busInstanceID:     parent,
		names:             names,
		probe:             probe,
	}, nil
}

func (c *CNCPort) isDevice() {}

// InstanceID returns the port's instance identifier.
func (c *CNCPort) InstanceID() string { return c.instanceID }

// PortID returns the location id (e.g. "CNCA0") that encodes the port's
// role and keys its driver configuration.
func (c *CNCPort) PortID() string { return c.portID }

// SiblingInstanceID returns the uppercased instance id of the paired
// opposite-role endpoint.
func (c *CNCPort) SiblingInstanceID() string { return c.siblingInstanceID }

// BusInstanceID returns the instance id of the parent bus.
func (c *CNCPort) BusInstanceID() string { return c.busInstanceID }

// IsPrimary reports whether the port is the primary endpoint of its pair.
// The role is encoded solely in the location-id prefix: "CNCA" is primary,
// anything else (notably "CNCB") is secondary.
func (c *CNCPort) IsPrimary() bool {
	return strings.HasPrefix(c.portID, primaryPortPrefix)
}

// ResolvePortName looks up the COM name the driver was configured to expose
// for this port. A port can be structurally valid without a resolvable
// name; callers should treat ErrNameNotFound as valid-but-unknown.
func (c *CNCPort) ResolvePortName() (string, error) {
	return c.names.PortName(c.portID)
}

// PortName returns the resolved COM name, or the empty string when no name
// is available.
func (c *CNCPort) PortName() string {
	name, err := c.ResolvePortName()
	if err != nil {
		return ""
	}
	return name
}

// DevicePath returns the extended-length device path of the port. It fails
// if the port name cannot be resolved.
func (c *CNCPort) DevicePath() (string, error) {
	name, err := c.ResolvePortName()
	if err != nil {
		return "", err
	}
	return DevicePath(name), nil
}

// InUse reports whether the port is currently held open by another process.
func (c *CNCPort) InUse() (bool, error) {
	path, err := c.DevicePath()
	if err != nil {
		return false, err
	}
	return c.probe.InUse(path)
}
