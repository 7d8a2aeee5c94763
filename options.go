package cncport

import (
	"errors"
	"log/slog"
)

type config struct {
	query  DeviceQuery
	names  NameResolver
	probe  Prober
	logger *slog.Logger
}

// Option is a functional option for configuring an enumeration pass
type Option func(*config) error

func defaultEnumerateConfig() config {
	return config{
		query:  defaultDeviceQuery(),
		names:  defaultNameResolver(),
		probe:  defaultProber(),
		logger: slog.Default(),
	}
}

// WithDeviceQuery replaces the OS device query
func WithDeviceQuery(q DeviceQuery) Option {
	return func(c *config) error {
		if q == nil {
			return errors.New("device query must not be nil")
		}
		c.query = q
		return nil
	}
}

// WithNameResolver replaces the port-name resolver handed to CNC ports
func WithNameResolver(r NameResolver) Option {
	return func(c *config) error {
		if r == nil {
			return errors.New("name resolver must not be nil")
		}
		c.names = r
		return nil
	}
}

// WithProber replaces the liveness prober handed to ports
func WithProber(p Prober) Option {
	return func(c *config) error {
		if p == nil {
			return errors.New("prober must not be nil")
		}
		c.probe = p
		return nil
	}
}

// WithLogger sets the logger used to report degraded devices
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	}
}
