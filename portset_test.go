package cncport

import (
	"errors"
	"log/slog"
	"testing"
)

// fakeDevice is a RawDevice built from literal property entries
type fakeDevice struct {
	props []RawProperty
	err   error
}

func (d fakeDevice) ReadProperties() ([]RawProperty, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.props, nil
}

// fakeQuery returns a fixed device list
type fakeQuery struct {
	devices []RawDevice
	err     error
}

func (q fakeQuery) Devices() ([]RawDevice, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.devices, nil
}

func physicalDevice(id, name string) RawDevice {
	return fakeDevice{props: []RawProperty{
		{Key: PropClass, Data: []string{"Ports"}},
		{Key: PropInstanceID, Data: []string{id}},
		{Key: PropLocationInfo, Data: []string{"Port_#0002.Hub_#0001"}},
		{Key: PropName, Data: []string{name}},
		{Key: PropDeviceDesc, Data: []string{"Communications Port"}},
		{Key: PropDriverDesc, Data: []string{"Serial Driver"}},
	}}
}

func busDevice(id string) RawDevice {
	return fakeDevice{props: []RawProperty{
		{Key: PropClass, Data: []string{"CNCPorts"}},
		{Key: PropInstanceID, Data: []string{id}},
	}}
}

func cncDevice(id, location, sibling string) RawDevice {
	return fakeDevice{props: []RawProperty{
		{Key: PropClass, Data: []string{"CNCPorts"}},
		{Key: PropInstanceID, Data: []string{id}},
		{Key: PropLocationInfo, Data: []string{location}},
		{Key: PropSiblings, Data: []string{sibling}},
		{Key: PropParent, Data: []string{`ROOT\COM0COM\0000`}},
	}}
}

func quietOpts(extra ...Option) []Option {
	opts := []Option{
		WithLogger(slog.New(slog.DiscardHandler)),
		WithNameResolver(fakeResolver{}),
		WithProber(fakeProber{}),
	}
	return append(opts, extra...)
}

func TestEnumerateClassification(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		physicalDevice(`ACPI\PNP0501\1`, "Communications Port (COM3)"),
		busDevice(`ROOT\COM0COM\0000`),
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `COM0COM\PORT\B1`),
		cncDevice(`COM0COM\PORT\B1`, "CNCB0", `COM0COM\PORT\A1`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if n := len(set.PhysicalPorts()); n != 1 {
		t.Fatalf("got %d physical ports, want 1", n)
	}
	if got := set.PhysicalPorts()[0].PortName(); got != "COM3" {
		t.Errorf("physical port name = %q, want COM3", got)
	}

	if n := len(set.Buses()); n != 1 {
		t.Fatalf("got %d buses, want 1", n)
	}
	if n := len(set.CNCPorts()); n != 2 {
		t.Fatalf("got %d CNC ports, want 2", n)
	}

	pairs := set.Pairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Primary.InstanceID() != `COM0COM\PORT\A1` {
		t.Errorf("pair primary = %q, want A1", pairs[0].Primary.InstanceID())
	}
	if pairs[0].Secondary.InstanceID() != `COM0COM\PORT\B1` {
		t.Errorf("pair secondary = %q, want B1", pairs[0].Secondary.InstanceID())
	}
}

func TestEnumerateIgnoresOtherClasses(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		fakeDevice{props: []RawProperty{
			{Key: PropClass, Data: []string{"USB"}},
			{Key: PropInstanceID, Data: []string{`USB\ROOT_HUB\1`}},
		}},
		fakeDevice{props: []RawProperty{
			{Key: PropClass, Data: []string{"Net"}},
			{Key: PropInstanceID, Data: []string{`PCI\VEN_8086\2`}},
		}},
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(set.PhysicalPorts())+len(set.Buses())+len(set.CNCPorts()) != 0 {
		t.Error("devices outside Ports/CNCPorts classes must be ignored")
	}
}

func TestEnumerateRootPrefixDiscriminant(t *testing.T) {
	// A CNCPorts-class device is a bus iff its instance id is
	// root-enumerated; the split is exhaustive and mutually exclusive
	query := fakeQuery{devices: []RawDevice{
		busDevice(`ROOT\COM0COM\0000`),
		busDevice(`ROOT\COM0COM\0001`),
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `COM0COM\PORT\B1`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(set.Buses()) != 2 {
		t.Errorf("got %d buses, want 2", len(set.Buses()))
	}
	if len(set.CNCPorts()) != 1 {
		t.Errorf("got %d CNC ports, want 1", len(set.CNCPorts()))
	}
}

func TestEnumerateQueryFailure(t *testing.T) {
	_, err := Enumerate(quietOpts(WithDeviceQuery(fakeQuery{err: errors.New("api unavailable")}))...)
	if !errors.Is(err, ErrEnumerationFailed) {
		t.Errorf("Enumerate error = %v, want ErrEnumerationFailed", err)
	}
}

func TestEnumerateDegradedDevice(t *testing.T) {
	// One unreadable device and one malformed CNC port must not abort
	// the pass
	query := fakeQuery{devices: []RawDevice{
		fakeDevice{err: errors.New("property read failed")},
		fakeDevice{props: []RawProperty{
			{Key: PropClass, Data: []string{"CNCPorts"}},
			{Key: PropInstanceID, Data: []string{`COM0COM\PORT\A1`}},
			// no location info, siblings, or parent
		}},
		physicalDevice(`ACPI\PNP0501\1`, "Communications Port (COM1)"),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(set.PhysicalPorts()) != 1 {
		t.Errorf("got %d physical ports, want 1", len(set.PhysicalPorts()))
	}
	if len(set.CNCPorts()) != 0 {
		t.Errorf("malformed CNC port was kept: %d ports", len(set.CNCPorts()))
	}
}

func TestPrimarySecondaryPartition(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `COM0COM\PORT\B1`),
		cncDevice(`COM0COM\PORT\B1`, "CNCB0", `COM0COM\PORT\A1`),
		cncDevice(`COM0COM\PORT\A2`, "CNCA1", `COM0COM\PORT\B2`),
		cncDevice(`COM0COM\PORT\B2`, "CNCB1", `COM0COM\PORT\A2`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	primary := set.PrimaryPorts()
	secondary := set.SecondaryPorts()
	if len(primary)+len(secondary) != len(set.CNCPorts()) {
		t.Errorf("partition is not total: %d + %d != %d",
			len(primary), len(secondary), len(set.CNCPorts()))
	}
	for _, p := range primary {
		if !p.IsPrimary() {
			t.Errorf("port %s in primary partition but IsPrimary() = false", p.InstanceID())
		}
	}
	for _, p := range secondary {
		if p.IsPrimary() {
			t.Errorf("port %s in secondary partition but IsPrimary() = true", p.InstanceID())
		}
	}
}

func TestPairsDropUnpairedPrimary(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		// sibling B9 does not exist in this snapshot
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `COM0COM\PORT\B9`),
		cncDevice(`COM0COM\PORT\A2`, "CNCA1", `COM0COM\PORT\B2`),
		cncDevice(`COM0COM\PORT\B2`, "CNCB1", `COM0COM\PORT\A2`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	pairs := set.Pairs()
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1 (unpaired primary dropped silently)", len(pairs))
	}
	if pairs[0].Primary.InstanceID() != `COM0COM\PORT\A2` {
		t.Errorf("pair primary = %q, want A2", pairs[0].Primary.InstanceID())
	}
}

func TestPairsCaseInsensitiveSiblingMatch(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `com0com\port\b1`),
		cncDevice(`com0com\port\B1`, "CNCB0", `COM0COM\PORT\A1`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(set.Pairs()) != 1 {
		t.Errorf("got %d pairs, want 1 (sibling match is case-insensitive)", len(set.Pairs()))
	}
}

func TestPairsAppearExactlyOnce(t *testing.T) {
	query := fakeQuery{devices: []RawDevice{
		cncDevice(`COM0COM\PORT\A1`, "CNCA0", `COM0COM\PORT\B1`),
		cncDevice(`COM0COM\PORT\B1`, "CNCB0", `COM0COM\PORT\A1`),
	}}

	set, err := Enumerate(quietOpts(WithDeviceQuery(query))...)
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	seen := make(map[string]int)
	for _, pair := range set.Pairs() {
		seen[pair.Primary.InstanceID()]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("primary %s appears in %d pairs, want 1", id, count)
		}
	}
}

func TestWithOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"nil query", WithDeviceQuery(nil)},
		{"nil resolver", WithNameResolver(nil)},
		{"nil prober", WithProber(nil)},
		{"nil logger", WithLogger(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Enumerate(tt.opt); err == nil {
				t.Error("Enumerate accepted a nil collaborator")
			}
		})
	}
}
