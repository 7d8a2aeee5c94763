package cncport

// NameResolver maps a CNC port's driver-internal identifier (the "CNCA0"
// style location id) to the COM name the com0com driver was configured to
// expose for it.
type NameResolver interface {
	// PortName returns the configured name, or an error wrapping
	// ErrNameNotFound when no name is configured or the configuration
	// store cannot be read. Absence is a normal, non-fatal outcome.
	PortName(id string) (string, error)
}
