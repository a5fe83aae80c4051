// Package http implements the REST transport of the code generation server.
//
// It wires chi routes to the service layer and carries the cross-cutting
// middleware: request tracing, access logging, response compression,
// request timeouts and cookie/bearer session authentication.
package http
