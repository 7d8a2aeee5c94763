package cncport

import (
	"errors"
	"log/slog"
	"testing"
)

func TestResolveProperties(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("flattens scalars and lists uniformly", func(t *testing.T) {
		dev := fakeDevice{props: []RawProperty{
			{Key: PropClass, Data: []string{"CNCPorts"}},
			{Key: PropSiblings, Data: []string{`COM0COM\PORT\B1`, `COM0COM\PORT\B2`}},
		}}

		props := resolveProperties(dev, logger)

		if v, ok := props.Value(PropClass); !ok || v != "CNCPorts" {
			t.Errorf("Value(Class) = %q, %v", v, ok)
		}
		siblings, ok := props.Values(PropSiblings)
		if !ok || len(siblings) != 2 {
			t.Fatalf("Values(Siblings) = %v, %v", siblings, ok)
		}
		if siblings[0] != `COM0COM\PORT\B1` {
			t.Errorf("first sibling = %q", siblings[0])
		}
	})

	t.Run("merges repeated keys", func(t *testing.T) {
		dev := fakeDevice{props: []RawProperty{
			{Key: PropSiblings, Data: []string{"a"}},
			{Key: PropSiblings, Data: []string{"b"}},
		}}

		props := resolveProperties(dev, logger)
		if siblings, _ := props.Values(PropSiblings); len(siblings) != 2 {
			t.Errorf("Values(Siblings) = %v, want two entries", siblings)
		}
	})

	t.Run("read failure degrades to empty record", func(t *testing.T) {
		dev := fakeDevice{err: errors.New("access denied")}

		props := resolveProperties(dev, logger)
		if len(props) != 0 {
			t.Errorf("got %d properties, want none", len(props))
		}
		if _, ok := props.Value(PropClass); ok {
			t.Error("Value on an empty record must report absence")
		}
	})
}

func TestPropertiesAccessors(t *testing.T) {
	props := Properties{
		PropInstanceID: {`COM0COM\PORT\A1`},
		PropSiblings:   {},
	}

	if _, ok := props.Value("Missing"); ok {
		t.Error("Value of a missing key must report absence")
	}
	if _, ok := props.Value(PropSiblings); ok {
		t.Error("Value of an empty entry must report absence")
	}
	if v, ok := props.Value(PropInstanceID); !ok || v != `COM0COM\PORT\A1` {
		t.Errorf("Value(InstanceID) = %q, %v", v, ok)
	}
}
