package cncport

import "fmt"

// RelayCommand describes an invocation of the hub4com relay utility that
// replicates a source port to one or more replica ports. The executable
// path is always explicit; the default location is supplied by the caller.
type RelayCommand struct {
	ExePath  string
	Baud     int
	Source   string   // port name, e.g. "COM3"
	Replicas []string // port names replicated to
}

// Args returns the full argument vector, executable first, with every port
// rendered as an extended-length device path.
func (c RelayCommand) Args() []string {
	args := []string{
		c.ExePath,
		"--octs=off",
		fmt.Sprintf("--baud=%d", c.Baud),
		"--bi-route=0:All",
		DevicePath(c.Source),
	}
	for _, replica := range c.Replicas {
		args = append(args, DevicePath(replica))
	}
	return args
}
