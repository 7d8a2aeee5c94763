package cncport

// Prober determines whether a port is currently opened by another process.
type Prober interface {
	// InUse attempts a non-destructive exclusive open of the given
	// extended-length device path, closing it immediately on success.
	// A busy-class open failure (the port is held by another process)
	// reports true. Any other failure wraps ErrPortProbeFailed so
	// callers can distinguish a busy port from a broken path.
	InUse(path string) (bool, error)
}
