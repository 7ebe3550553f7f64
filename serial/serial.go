// Package serial adapts a physical serial link to the byte-stream
// interface the frame reader consumes. The codec layers never open or
// configure the port themselves.
package serial

import "io"

// Port represents an open serial link. The abstraction keeps the rest
// of the tree off the concrete serial library, so tests can substitute
// an in-memory stream.
type Port interface {
	io.ReadWriteCloser

	// Flush discards data buffered on the link, so a session does not
	// start on the tail of a partial frame.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyUSB0", "COM3").
	Device string

	// Baud rate. XBee modules ship at 9600.
	Baud int

	// Read timeout in milliseconds. Zero means blocking reads. Leave
	// it zero for long-running readers: with a timeout set, an idle
	// link surfaces timed-out reads as io.EOF and stream consumers
	// take that for end-of-stream. Close unblocks a blocked read.
	ReadTimeout int
}

// DefaultConfig returns the factory-default XBee settings for a
// device: 9600 baud, blocking reads.
func DefaultConfig(device string) *Config {
	return &Config{
		Device: device,
		Baud:   9600,
	}
}
