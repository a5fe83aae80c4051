package server

import "context"

// Server defines the lifecycle of the process.
type Server interface {
	// RunServer serves until a stop signal arrives or a transport fails,
	// then shuts everything down.
	RunServer() error

	// Shutdown stops the transports and then the workers. ctx bounds the
	// whole sequence.
	Shutdown(ctx context.Context) error
}
