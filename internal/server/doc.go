// Package server runs the transports of the code generation server together
// with its background workers.
//
// On SIGINT, SIGTERM or SIGQUIT the transports stop accepting requests
// first, then the workers drain the validation queue within the shutdown
// timeout.
package server
