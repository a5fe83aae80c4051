package server

import "errors"

// errNoTransports is returned by NewServer when handlers carry neither an
// HTTP router nor a gRPC handler.
var errNoTransports = errors.New("server: neither HTTP nor gRPC transport is configured")
