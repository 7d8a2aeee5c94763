// Package cncport discovers serial-port devices on Windows and classifies
// them into physical COM ports, com0com null-modem emulator buses, and
// virtual CNC port endpoints, reconstructing the primary/secondary pairing
// between endpoints.
//
// The package backs the hub4port CLI, a wrapper around the hub4com utility
// from the com0com suite, but is usable as a standalone library.
//
// # Basic Usage
//
// Enumerate the current device topology and walk the buckets:
//
//	ports, err := cncport.Enumerate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range ports.PhysicalPorts() {
//	    fmt.Printf("%s (%s)\n", p.PortName(), p.Description())
//	}
//
//	for _, pair := range ports.Pairs() {
//	    fmt.Printf("%s replicates to %s\n",
//	        pair.Primary.PortName(), pair.Secondary.PortName())
//	}
//
// A PortSet is an immutable snapshot of one enumeration pass. To observe a
// changed topology, call Enumerate again; old and new snapshots share no
// state and must not be mixed.
//
// # Device Classification
//
// Devices are bucketed by two discriminants read from the normalized
// property record: the device class and an instance-id prefix.
//
//   - Class "Ports" is a PhysicalPort.
//   - Class "CNCPorts" with a ROOT-prefixed instance id is a CNCBus,
//     the root controller of a com0com driver instance.
//   - Class "CNCPorts" otherwise is a CNCPort, one endpoint of a virtual
//     null-modem pair. A location id starting with "CNCA" marks the
//     primary endpoint; "CNCB" the secondary.
//
// Devices of any other class are ignored. Only devices reporting a healthy
// PnP status are considered.
//
// # Port Names and Liveness
//
// A physical port's name is parsed from its display name ("Serial Port
// (COM3)" yields "COM3"). A CNC port's name is configured in the com0com
// driver and resolved on demand from the registry; resolution failure is
// non-fatal and yields an empty name:
//
//	name, err := port.ResolvePortName()
//	if errors.Is(err, cncport.ErrNameNotFound) {
//	    // structurally valid port with no configured name
//	}
//
// Whether a port is currently held open by another process is determined by
// a non-destructive exclusive open/close probe on its device path:
//
//	busy, err := port.InUse()
//
// DevicePath renders a port name in the extended-length form ("COM5"
// becomes `\\.\COM5`) expected by the probe and by hub4com.
//
// # Testing and Injection
//
// The OS boundaries are injectable through functional options, so the
// engine is fully testable off-Windows:
//
//	ports, err := cncport.Enumerate(
//	    cncport.WithDeviceQuery(fakeQuery),
//	    cncport.WithNameResolver(fakeNames),
//	    cncport.WithProber(fakeProber),
//	)
//
// # Error Handling
//
// The package provides specific error types for robust error handling:
//
//	var (
//	    ErrEnumerationFailed   // the OS device query itself failed
//	    ErrNameNotFound        // no PortName configured for a CNC port
//	    ErrPortProbeFailed     // probe failed for a reason other than busy
//	    ErrUnsupportedPlatform // OS-backed collaborator off Windows
//	)
//
// A device missing a property its variant requires is rejected with a
// *MissingPropertyError; during enumeration such devices are dropped with
// a warning rather than aborting the pass.
//
// # Platform Support
//
// Device enumeration, registry name resolution, and liveness probing are
// Windows-only (SetupAPI, registry, CreateFile). The classification and
// pairing engine itself is pure and runs anywhere given an injected
// DeviceQuery.
package cncport
